package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusRequested  OrderStatus = "solicitado"
	StatusDownloaded OrderStatus = "descargado"
	StatusCaptured   OrderStatus = "capturado"
)

// validTransitions defines the allowed state machine transitions.
// capturado is terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusRequested:  {StatusDownloaded},
	StatusDownloaded: {StatusCaptured},
}

// ParseOrderStatus returns the status named by s, or ErrInvalidStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case StatusRequested, StatusDownloaded, StatusCaptured:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Reserved order fields. They are managed by dedicated operations and may not
// appear in a generic field update.
const (
	FieldID        = "id"
	FieldClienteID = "cliente_id"
	FieldEstado    = "estado"
	FieldCancelado = "cancelado"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// IsReservedOrderField reports whether name is owned by the order itself
// rather than by its free-form data.
func IsReservedOrderField(name string) bool {
	switch name {
	case FieldID, FieldClienteID, FieldEstado, FieldCancelado, FieldCreatedAt, FieldUpdatedAt:
		return true
	}
	return false
}

// Order is the core aggregate root of the pedidos table.
type Order struct {
	ID        string
	ClienteID string
	Estado    OrderStatus
	Cancelado bool
	// Datos holds the caller-defined order fields (products, notes, ...).
	Datos     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderWithClient is an order annotated with its client's identity.
type OrderWithClient struct {
	Order
	Cliente ClientRef
}

// ClientRef is the minimal client identity attached to vendor order listings.
type ClientRef struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}
