package ports

import (
	"context"

	"github.com/vendemas/pedidos-api/internal/core/domain"
)

// UserRepository defines persistence operations for the usuarios table.
type UserRepository interface {
	// Create inserts the user. Returns domain.ErrEmailTaken on a unique violation.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDAndRole returns domain.ErrUserNotFound unless a user with both the
	// id and the role exists.
	FindByIDAndRole(ctx context.Context, id, role string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns every user, or only those with the given role when non-empty.
	List(ctx context.Context, role string) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// RelationshipRepository manages the vendedores_clientes join table.
type RelationshipRepository interface {
	Link(ctx context.Context, vendorID, clientID string) error
	ClientIDsOfVendor(ctx context.Context, vendorID string) ([]string, error)
	ClientsOfVendor(ctx context.Context, vendorID string) ([]domain.ClientSummary, error)
}
