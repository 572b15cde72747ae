package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/vendemas/pedidos-api/internal/core/domain"
	"github.com/vendemas/pedidos-api/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubUserService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	listFn     func(ctx context.Context, role string) ([]*domain.User, error)
	clientsFn  func(ctx context.Context, vendorID string) ([]domain.ClientSummary, error)
	updateFn   func(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) List(ctx context.Context, role string) ([]*domain.User, error) {
	return s.listFn(ctx, role)
}

func (s *stubUserService) ClientsOfVendor(ctx context.Context, vendorID string) ([]domain.ClientSummary, error) {
	return s.clientsFn(ctx, vendorID)
}

func (s *stubUserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

// stubOrderService only implements what a test sets; other calls panic.
type stubOrderService struct {
	ports.OrderService
	createFn    func(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error)
	updateFn    func(ctx context.Context, id string, fields map[string]any) (*domain.Order, error)
	setStatusFn func(ctx context.Context, id, status string) (*domain.Order, error)
	cancelFn    func(ctx context.Context, id string) (*domain.Order, error)
	vendorFn    func(ctx context.Context, vendorID string) ([]*domain.OrderWithClient, error)
	getFn       func(ctx context.Context, id string) (*domain.Order, error)
}

func (s *stubOrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	return s.createFn(ctx, in)
}

func (s *stubOrderService) Update(ctx context.Context, id string, fields map[string]any) (*domain.Order, error) {
	return s.updateFn(ctx, id, fields)
}

func (s *stubOrderService) SetStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	return s.setStatusFn(ctx, id, status)
}

func (s *stubOrderService) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return s.cancelFn(ctx, id)
}

func (s *stubOrderService) ListByVendorClients(ctx context.Context, vendorID string) ([]*domain.OrderWithClient, error) {
	return s.vendorFn(ctx, vendorID)
}

func (s *stubOrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.getFn(ctx, id)
}
