package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vendemas/pedidos-api/internal/core/domain"
	"github.com/vendemas/pedidos-api/internal/core/ports"
	"github.com/vendemas/pedidos-api/internal/core/saga"
	"github.com/vendemas/pedidos-api/internal/metrics"
)

// UserService manages accounts, vendor-client links and profile images.
type UserService struct {
	users  ports.UserRepository
	links  ports.RelationshipRepository
	blobs  ports.BlobStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(users ports.UserRepository, links ports.RelationshipRepository, blobs ports.BlobStore, logger zerolog.Logger) *UserService {
	return &UserService{users: users, links: links, blobs: blobs, logger: logger, now: time.Now}
}

// Register creates a user. The image upload, the user row and the vendor link
// are separate writes; if any later step fails the earlier ones are undone in
// reverse order, so a failed registration leaves neither row nor blob behind.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if !domain.ValidRole(in.Rol) {
		return nil, domain.ErrInvalidRole
	}
	if in.Rol == domain.RoleClient && in.VendedorID == "" {
		return nil, domain.ErrVendorRequired
	}
	if in.Nombre == "" || in.Email == "" || in.Password == "" {
		return nil, domain.Validationf("nombre, email and password are required")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	tx := saga.New(s.logger.With().Str("op", "register").Str("email", in.Email).Logger())
	fail := func(cause error) (*domain.User, error) {
		_ = tx.Rollback(ctx) // failures are logged by the compensator
		metrics.UserRegistrationsTotal.WithLabelValues(in.Rol, "rolled_back").Inc()
		return nil, cause
	}

	// 1. Upload the image first so the row is inserted with its URL.
	var imageURL *string
	if in.Imagen != nil {
		url, err := s.uploadImage(ctx, in.Imagen)
		if err != nil {
			return fail(err)
		}
		imageURL = &url
		tx.Push("remove_image", func(ctx context.Context) error {
			return s.blobs.Remove(ctx, url)
		})
	}

	// 2. Insert the user row.
	now := s.now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		ID:        uuid.NewString(),
		Nombre:    in.Nombre,
		Email:     in.Email,
		Password:  hash,
		Rol:       in.Rol,
		ImagenURL: imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return fail(err)
		}
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to insert user")
		return fail(domain.Validationf("could not create user"))
	}
	tx.Push("delete_user", func(ctx context.Context) error {
		return s.users.Delete(ctx, user.ID)
	})

	if in.Rol == domain.RoleClient {
		// 3. The vendor must exist with role vendedor.
		if _, err := s.users.FindByIDAndRole(ctx, in.VendedorID, domain.RoleVendor); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fail(domain.ErrInvalidVendor)
			}
			return fail(err)
		}

		// 4. Link client to vendor.
		if err := s.links.Link(ctx, in.VendedorID, user.ID); err != nil {
			s.logger.Error().Err(err).Str("vendedor_id", in.VendedorID).Str("cliente_id", user.ID).Msg("failed to link client to vendor")
			return fail(domain.ErrRelationshipFailed)
		}
	}

	metrics.UserRegistrationsTotal.WithLabelValues(in.Rol, "ok").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("rol", user.Rol).Msg("user registered")
	return user, nil
}

// List returns all users, or only those with the given role.
func (s *UserService) List(ctx context.Context, role string) ([]*domain.User, error) {
	users, err := s.users.List(ctx, role)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// ClientsOfVendor returns the clients linked to a vendor.
func (s *UserService) ClientsOfVendor(ctx context.Context, vendorID string) ([]domain.ClientSummary, error) {
	if _, err := s.users.FindByIDAndRole(ctx, vendorID, domain.RoleVendor); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, err
	}

	clients, err := s.links.ClientsOfVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []domain.ClientSummary{}
	}
	return clients, nil
}

// Update changes the fields present in the input. A new image replaces the
// old one: the old blob is removed before the new one is uploaded, and a
// removal failure aborts the update untouched. Once the old blob is gone, any
// later failure also clears the stored URL.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := domain.UserPatch{
		Nombre: nonEmpty(in.Nombre),
		Email:  nonEmpty(in.Email),
	}
	if pw := nonEmpty(in.Password); pw != nil {
		hash, err := hashPassword(*pw)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}

	tx := saga.New(s.logger.With().Str("op", "update_user").Str("user_id", id).Logger())
	if in.Imagen != nil {
		if current.HasImage() {
			if err := s.blobs.Remove(ctx, *current.ImagenURL); err != nil {
				return nil, domain.Internalf("remove previous image of user %s: %v", id, err)
			}
			// From here on the stored URL points at a deleted blob.
			tx.Push("clear_image_url", func(ctx context.Context) error {
				return s.clearImageURL(ctx, id)
			})
		}

		url, err := s.uploadImage(ctx, in.Imagen)
		if err != nil {
			_ = tx.Rollback(ctx)
			return nil, err
		}
		patch.ImagenURL = &url
		tx.Push("remove_image", func(ctx context.Context) error {
			return s.blobs.Remove(ctx, url)
		})
	}

	updated, err := s.users.Update(ctx, id, patch)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Bool("new_image", in.Imagen != nil).Msg("user updated")
	return updated, nil
}

// Delete removes the user and, best effort, its profile image.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if user.HasImage() {
		if err := s.blobs.Remove(ctx, *user.ImagenURL); err != nil {
			s.logger.Warn().Err(err).Str("user_id", id).Str("imagen_url", *user.ImagenURL).Msg("failed to remove user image, deleting user anyway")
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// clearImageURL drops a URL whose blob no longer exists.
func (s *UserService) clearImageURL(ctx context.Context, id string) error {
	empty := ""
	_, err := s.users.Update(ctx, id, domain.UserPatch{ImagenURL: &empty})
	return err
}

func (s *UserService) uploadImage(ctx context.Context, img *ports.ImageInput) (string, error) {
	name := fmt.Sprintf("%d_%s", s.now().UnixMilli(), cleanFilename(img.Filename))
	url, err := s.blobs.Upload(ctx, name, img.Body, img.ContentType)
	if err != nil {
		return "", domain.Internalf("upload image %s: %v", name, err)
	}
	return url, nil
}

func cleanFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "imagen"
	}
	return strings.ReplaceAll(name, " ", "_")
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
