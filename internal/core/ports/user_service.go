package ports

import (
	"context"
	"io"

	"github.com/vendemas/pedidos-api/internal/core/domain"
)

// ImageInput is an uploaded profile image.
type ImageInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// RegisterInput carries the data for a new user account.
type RegisterInput struct {
	Nombre     string
	Email      string
	Password   string
	Rol        string
	VendedorID string      // required when Rol is cliente
	Imagen     *ImageInput // optional
}

// UpdateUserInput lists the profile changes; nil fields are left untouched.
type UpdateUserInput struct {
	Nombre   *string
	Email    *string
	Password *string
	Imagen   *ImageInput
}

// UserService defines use-case operations for user accounts.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	List(ctx context.Context, role string) ([]*domain.User, error)
	ClientsOfVendor(ctx context.Context, vendorID string) ([]domain.ClientSummary, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// AuthService issues bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
