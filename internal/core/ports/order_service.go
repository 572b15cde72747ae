package ports

import (
	"context"

	"github.com/vendemas/pedidos-api/internal/core/domain"
)

// CreateOrderInput carries all data needed to create a new order. Datos holds
// the remaining request fields; an "estado" key in it is ignored.
type CreateOrderInput struct {
	ClienteID      string
	Datos          map[string]any
	IdempotencyKey string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	List(ctx context.Context, clientID string) ([]*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Order, error)
	SetStatus(ctx context.Context, id, status string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
	Reactivate(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	ListByVendorClients(ctx context.Context, vendorID string) ([]*domain.OrderWithClient, error)
	History(ctx context.Context, id string) ([]*domain.OrderEvent, error)
}
