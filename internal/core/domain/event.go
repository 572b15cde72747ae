package domain

import "time"

// OrderEventType names the kind of change recorded in the audit trail.
type OrderEventType string

const (
	EventCreated     OrderEventType = "creado"
	EventUpdated     OrderEventType = "actualizado"
	EventStatus      OrderEventType = "estado"
	EventCancelled   OrderEventType = "cancelado"
	EventReactivated OrderEventType = "reactivado"
	EventDeleted     OrderEventType = "eliminado"
)

// OrderEvent is a single entry of an order's audit trail.
type OrderEvent struct {
	PedidoID       string
	Tipo           OrderEventType
	EstadoAnterior OrderStatus // empty unless Tipo == EventStatus
	EstadoNuevo    OrderStatus
	ActorID        string
	OcurridoEn     time.Time
}
