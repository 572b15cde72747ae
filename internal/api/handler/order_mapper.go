package handler

import (
	"time"

	"github.com/vendemas/pedidos-api/internal/core/domain"
)

// --- Service result → HTTP response ---

// toOrderResponse flattens the order data next to the fixed columns. The
// fixed columns win over data keys of the same name.
func toOrderResponse(o *domain.Order) map[string]any {
	out := make(map[string]any, len(o.Datos)+6)
	for k, v := range o.Datos {
		out[k] = v
	}
	out[domain.FieldID] = o.ID
	out[domain.FieldClienteID] = o.ClienteID
	out[domain.FieldEstado] = string(o.Estado)
	out[domain.FieldCancelado] = o.Cancelado
	out[domain.FieldCreatedAt] = o.CreatedAt.UTC().Format(time.RFC3339)
	out[domain.FieldUpdatedAt] = o.UpdatedAt.UTC().Format(time.RFC3339)
	return out
}

func toOrderListResponse(orders []*domain.Order) []map[string]any {
	out := make([]map[string]any, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}

func toVendorOrderListResponse(orders []*domain.OrderWithClient) []map[string]any {
	out := make([]map[string]any, len(orders))
	for i, o := range orders {
		resp := toOrderResponse(&o.Order)
		resp["cliente"] = o.Cliente
		out[i] = resp
	}
	return out
}

func toOrderEventListResponse(events []*domain.OrderEvent) []orderEventResponse {
	out := make([]orderEventResponse, len(events))
	for i, e := range events {
		out[i] = orderEventResponse{
			Tipo:           string(e.Tipo),
			EstadoAnterior: string(e.EstadoAnterior),
			EstadoNuevo:    string(e.EstadoNuevo),
			ActorID:        e.ActorID,
			OcurridoEn:     e.OcurridoEn.UTC().Format(time.RFC3339),
		}
	}
	return out
}

// --- Request → Service input ---

// splitOrderBody separates cliente_id from the caller-defined fields.
func splitOrderBody(body map[string]any) (clienteID string, datos map[string]any) {
	datos = make(map[string]any, len(body))
	for k, v := range body {
		if k == domain.FieldClienteID {
			clienteID, _ = v.(string)
			continue
		}
		datos[k] = v
	}
	return clienteID, datos
}
