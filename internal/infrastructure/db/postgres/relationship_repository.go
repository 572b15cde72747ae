package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendemas/pedidos-api/internal/core/domain"
	"github.com/vendemas/pedidos-api/internal/core/ports"
)

var _ ports.RelationshipRepository = (*RelationshipRepository)(nil)

// RelationshipRepository implements ports.RelationshipRepository on vendedores_clientes.
type RelationshipRepository struct {
	pool *pgxpool.Pool
}

func NewRelationshipRepository(pool *pgxpool.Pool) *RelationshipRepository {
	return &RelationshipRepository{pool: pool}
}

func (r *RelationshipRepository) Link(ctx context.Context, vendorID, clientID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO vendedores_clientes (vendedor_id, cliente_id) VALUES ($1, $2)`,
		vendorID, clientID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("link vendor client: %w", err)
	}
	return nil
}

func (r *RelationshipRepository) ClientIDsOfVendor(ctx context.Context, vendorID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT cliente_id::text FROM vendedores_clientes WHERE vendedor_id = $1 ORDER BY created_at`,
		vendorID,
	)
	if err != nil {
		if isInvalidID(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list vendor client ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan client id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *RelationshipRepository) ClientsOfVendor(ctx context.Context, vendorID string) ([]domain.ClientSummary, error) {
	query := `
		SELECT u.id::text, u.nombre, u.email, u.imagen_url
		FROM vendedores_clientes vc
		JOIN usuarios u ON u.id = vc.cliente_id
		WHERE vc.vendedor_id = $1
		ORDER BY vc.created_at`
	rows, err := r.pool.Query(ctx, query, vendorID)
	if err != nil {
		if isInvalidID(err) {
			return []domain.ClientSummary{}, nil
		}
		return nil, fmt.Errorf("list vendor clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.ClientSummary{}
	for rows.Next() {
		var c domain.ClientSummary
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Email, &c.ImagenURL); err != nil {
			return nil, fmt.Errorf("scan vendor client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
