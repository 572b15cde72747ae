package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendemas/pedidos-api/internal/core/domain"
	"github.com/vendemas/pedidos-api/internal/core/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

const orderColumns = `id::text, cliente_id::text, estado, cancelado, datos, created_at, updated_at`

// OrderRepository implements ports.OrderRepository on the pedidos table.
// Caller-defined fields live in the datos jsonb column.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		estado string
	)
	if err := row.Scan(&o.ID, &o.ClienteID, &estado, &o.Cancelado, &o.Datos, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Estado = domain.OrderStatus(estado)
	if o.Datos == nil {
		o.Datos = map[string]any{}
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	datos := o.Datos
	if datos == nil {
		datos = map[string]any{}
	}
	query := `
		INSERT INTO pedidos (id, cliente_id, estado, cancelado, datos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + orderColumns
	created, err := scanOrder(r.pool.QueryRow(ctx, query,
		o.ID, o.ClienteID, string(o.Estado), o.Cancelado, datos, o.CreatedAt, o.UpdatedAt,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.one(ctx, `SELECT `+orderColumns+` FROM pedidos WHERE id = $1`, id)
}

func (r *OrderRepository) List(ctx context.Context, clientID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM pedidos`
	var args []any
	if clientID != "" {
		query += ` WHERE cliente_id = $1`
		args = append(args, clientID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return []*domain.Order{}, nil
		}
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ListWithClient returns the orders of the given clients joined with the
// client's identity.
func (r *OrderRepository) ListWithClient(ctx context.Context, clientIDs []string) ([]*domain.OrderWithClient, error) {
	query := `
		SELECT p.id::text, p.cliente_id::text, p.estado, p.cancelado, p.datos, p.created_at, p.updated_at,
		       u.id::text, u.nombre, u.email
		FROM pedidos p
		JOIN usuarios u ON u.id = p.cliente_id
		WHERE p.cliente_id = ANY($1::uuid[])
		ORDER BY p.created_at`
	rows, err := r.pool.Query(ctx, query, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("list vendor orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.OrderWithClient{}
	for rows.Next() {
		var (
			o      domain.OrderWithClient
			estado string
		)
		err := rows.Scan(
			&o.ID, &o.ClienteID, &estado, &o.Cancelado, &o.Datos, &o.CreatedAt, &o.UpdatedAt,
			&o.Cliente.ID, &o.Cliente.Nombre, &o.Cliente.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan vendor order: %w", err)
		}
		o.Estado = domain.OrderStatus(estado)
		if o.Datos == nil {
			o.Datos = map[string]any{}
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// MergeData merges fields into datos; keys already present are overwritten.
func (r *OrderRepository) MergeData(ctx context.Context, id string, fields map[string]any) (*domain.Order, error) {
	return r.one(ctx, `
		UPDATE pedidos SET datos = datos || $2::jsonb, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id, fields)
}

func (r *OrderRepository) SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return r.one(ctx, `
		UPDATE pedidos SET estado = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id, string(status))
}

func (r *OrderRepository) SetCancelled(ctx context.Context, id string, cancelled bool) (*domain.Order, error) {
	return r.one(ctx, `
		UPDATE pedidos SET cancelado = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id, cancelled)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pedidos WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OrderRepository) one(ctx context.Context, query string, args ...any) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("order query: %w", err)
	}
	return o, nil
}
