package ports

import (
	"context"

	"github.com/vendemas/pedidos-api/internal/core/domain"
)

// OrderRepository defines persistence operations for the pedidos table.
// Methods that target a single row return domain.ErrOrderNotFound when it is absent.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns every order, or only the client's orders when clientID is non-empty.
	List(ctx context.Context, clientID string) ([]*domain.Order, error)
	ListWithClient(ctx context.Context, clientIDs []string) ([]*domain.OrderWithClient, error)
	// MergeData merges fields into the order's free-form data.
	MergeData(ctx context.Context, id string, fields map[string]any) (*domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	SetCancelled(ctx context.Context, id string, cancelled bool) (*domain.Order, error)
	// Delete reports whether a row was removed; a missing row is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}

// OrderEventRepository persists the order audit trail.
type OrderEventRepository interface {
	Insert(ctx context.Context, event *domain.OrderEvent) error
	ListByOrder(ctx context.Context, orderID string) ([]*domain.OrderEvent, error)
}

// IdempotencyStore remembers which order an Idempotency-Key produced. Keys are
// scoped to the client the order is created for.
type IdempotencyStore interface {
	// Reserve claims key for clientID before the order is inserted. It returns
	// reserved=true when the key was free; otherwise the order id stored for
	// it, or "" while the first request is still in flight.
	Reserve(ctx context.Context, clientID, key string) (orderID string, reserved bool, err error)
	// Remember attaches the created order to a reserved key.
	Remember(ctx context.Context, clientID, key, orderID string) error
	// Release frees a reserved key whose order was never created.
	Release(ctx context.Context, clientID, key string) error
}
