package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vendemas/pedidos-api/internal/core/domain"
	"github.com/vendemas/pedidos-api/internal/core/ports"
	"github.com/vendemas/pedidos-api/internal/metrics"
)

// OrderService enforces the order lifecycle and mediates all order mutations.
// It keeps no state between calls: every rule is checked against a fresh read.
type OrderService struct {
	orders ports.OrderRepository
	users  ports.UserRepository
	links  ports.RelationshipRepository
	events ports.OrderEventRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewOrderService(
	orders ports.OrderRepository,
	users ports.UserRepository,
	links ports.RelationshipRepository,
	events ports.OrderEventRepository,
	idem ports.IdempotencyStore,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders: orders,
		users:  users,
		links:  links,
		events: events,
		idem:   idem,
		logger: logger,
		now:    time.Now,
	}
}

// Create inserts a new order in status solicitado for an existing client. An
// idempotency key is scoped to the client: a repeated key returns the order it
// already produced without side effects, and a key whose first request is
// still running is refused.
func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	if in.ClienteID == "" {
		return nil, domain.ErrClientIDRequired
	}

	if _, err := s.users.FindByIDAndRole(ctx, in.ClienteID, domain.RoleClient); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}

	var held bool
	if in.IdempotencyKey != "" {
		existing, reserved, err := s.claim(ctx, in)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		held = reserved
	}

	datos := make(map[string]any, len(in.Datos))
	for k, v := range in.Datos {
		if domain.IsReservedOrderField(k) {
			continue
		}
		datos[k] = v
	}

	now := s.now().UTC()
	created, err := s.orders.Create(ctx, &domain.Order{
		ID:        uuid.NewString(),
		ClienteID: in.ClienteID,
		Estado:    domain.StatusRequested,
		Datos:     datos,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("cliente_id", in.ClienteID).Msg("failed to create order")
		if held {
			if rerr := s.idem.Release(context.WithoutCancel(ctx), in.ClienteID, in.IdempotencyKey); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", in.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if held {
		if err := s.idem.Remember(ctx, in.ClienteID, in.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	metrics.OrdersCreatedTotal.Inc()
	s.record(ctx, created.ID, domain.EventCreated, "", created.Estado)
	s.logger.Info().Str("pedido_id", created.ID).Str("cliente_id", created.ClienteID).Msg("order created")
	return created, nil
}

// claim reserves the idempotency key of in. It returns the order a previous
// request created with the same key, or reserved=true when this request now
// holds the key and must settle it after the insert. An unreachable store is
// logged and the order is created without idempotency.
func (s *OrderService) claim(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, bool, error) {
	log := s.logger.With().Str("cliente_id", in.ClienteID).Str("idempotency_key", in.IdempotencyKey).Logger()

	id, reserved, err := s.idem.Reserve(ctx, in.ClienteID, in.IdempotencyKey)
	if err != nil {
		log.Warn().Err(err).Msg("idempotency store unavailable, creating anyway")
		return nil, false, nil
	}
	if reserved {
		return nil, true, nil
	}
	if id == "" {
		return nil, false, domain.ErrRequestInFlight
	}

	existing, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The order was deleted since; the key is reused for a new one.
			log.Info().Str("pedido_id", id).Msg("idempotent order gone, creating again")
			return nil, true, nil
		}
		return nil, false, err
	}

	metrics.IdempotentReplaysTotal.Inc()
	log.Info().Str("pedido_id", existing.ID).Msg("idempotent replay")
	return existing, false, nil
}

// List returns all orders, or only those of clientID when non-empty.
func (s *OrderService) List(ctx context.Context, clientID string) ([]*domain.Order, error) {
	orders, err := s.orders.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// Update merges fields into the order data. Captured orders are frozen, and
// the lifecycle fields can only change through their dedicated operations.
func (s *OrderService) Update(ctx context.Context, id string, fields map[string]any) (*domain.Order, error) {
	current, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Estado == domain.StatusCaptured {
		metrics.OrderRejectionsTotal.WithLabelValues("captured").Inc()
		return nil, domain.ErrOrderCaptured
	}

	for k := range fields {
		if domain.IsReservedOrderField(k) {
			return nil, domain.Validationf("field %q cannot be changed by a generic update", k)
		}
	}
	if len(fields) == 0 {
		return nil, domain.Validationf("no fields to update")
	}

	updated, err := s.orders.MergeData(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.record(ctx, id, domain.EventUpdated, "", updated.Estado)
	return updated, nil
}

// SetStatus advances the order one step along solicitado → descargado → capturado.
func (s *OrderService) SetStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	current, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Estado.CanTransitionTo(next) {
		metrics.OrderRejectionsTotal.WithLabelValues("invalid_transition").Inc()
		s.logger.Debug().Str("pedido_id", id).Str("from", string(current.Estado)).Str("to", string(next)).Msg("transition rejected")
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.orders.SetStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(current.Estado), string(next)).Inc()
	s.record(ctx, id, domain.EventStatus, current.Estado, next)
	s.logger.Info().Str("pedido_id", id).Str("from", string(current.Estado)).Str("to", string(next)).Msg("order status changed")
	return updated, nil
}

// Cancel flags the order as cancelled whatever its status.
func (s *OrderService) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return s.setCancelled(ctx, id, true)
}

// Reactivate clears the cancelled flag whatever its status.
func (s *OrderService) Reactivate(ctx context.Context, id string) (*domain.Order, error) {
	return s.setCancelled(ctx, id, false)
}

func (s *OrderService) setCancelled(ctx context.Context, id string, cancelled bool) (*domain.Order, error) {
	updated, err := s.orders.SetCancelled(ctx, id, cancelled)
	if err != nil {
		return nil, err
	}

	eventType := domain.EventReactivated
	if cancelled {
		eventType = domain.EventCancelled
	}
	metrics.OrderCancellationsTotal.WithLabelValues(strconv.FormatBool(cancelled)).Inc()
	s.record(ctx, id, eventType, "", updated.Estado)
	return updated, nil
}

// Delete removes the order. Deleting a missing order succeeds and leaves no
// trace in the audit trail.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return nil
	}
	s.record(ctx, id, domain.EventDeleted, "", "")
	s.logger.Info().Str("pedido_id", id).Msg("order deleted")
	return nil
}

// ListByVendorClients returns the orders of every client linked to vendorID,
// each with its client's identity. A vendor without clients gets an empty list.
func (s *OrderService) ListByVendorClients(ctx context.Context, vendorID string) ([]*domain.OrderWithClient, error) {
	clientIDs, err := s.links.ClientIDsOfVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if len(clientIDs) == 0 {
		return []*domain.OrderWithClient{}, nil
	}

	orders, err := s.orders.ListWithClient(ctx, clientIDs)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.OrderWithClient{}
	}
	return orders, nil
}

// History returns the audit trail of an existing order, oldest first.
func (s *OrderService) History(ctx context.Context, id string) ([]*domain.OrderEvent, error) {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return nil, err
	}

	events, err := s.events.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.OrderEvent{}
	}
	return events, nil
}

// record appends an entry to the audit trail (non-fatal on failure).
func (s *OrderService) record(ctx context.Context, orderID string, t domain.OrderEventType, from, to domain.OrderStatus) {
	ev := &domain.OrderEvent{
		PedidoID:       orderID,
		Tipo:           t,
		EstadoAnterior: from,
		EstadoNuevo:    to,
		ActorID:        domain.ActorFrom(ctx),
		OcurridoEn:     s.now().UTC(),
	}
	if err := s.events.Insert(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Str("pedido_id", orderID).Str("tipo", string(t)).Msg("failed to insert audit event")
	}
}
