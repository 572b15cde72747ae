package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendemas/pedidos-api/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
	binder  echo.DefaultBinder
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// bindFields decodes a free-form JSON or form body.
func (h *OrderHandler) bindFields(c echo.Context) (map[string]any, error) {
	body := map[string]any{}
	if err := h.binder.BindBody(c, &body); err != nil {
		return nil, bindError(err)
	}
	return body, nil
}

// Create handles POST /pedidos.
//
// @Summary      Create an order
// @Description  Every field but cliente_id is stored as order data. estado is always solicitado.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Replays the first order created with this key"
// @Param        body             body      map[string]any  true   "cliente_id plus any order fields"
// @Success      201              {object}  orderResponse
// @Failure      400              {object}  errorBody
// @Failure      404              {object}  errorBody
// @Router       /pedidos [post]
func (h *OrderHandler) Create(c echo.Context) error {
	body, err := h.bindFields(c)
	if err != nil {
		return err
	}
	clienteID, datos := splitOrderBody(body)

	order, err := h.service.Create(c.Request().Context(), ports.CreateOrderInput{
		ClienteID:      clienteID,
		Datos:          datos,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /pedidos.
//
// @Summary      List orders
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id  query     string  false  "Only this client's orders"
// @Success      200         {array}   orderResponse
// @Router       /pedidos [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.List(c.Request().Context(), c.QueryParam("cliente_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderListResponse(orders))
}

// Get handles GET /pedidos/:id.
//
// @Summary      Get an order
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  errorBody
// @Router       /pedidos/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Update handles PUT /pedidos/:id.
//
// @Summary      Update order fields
// @Description  Captured orders cannot be edited. estado and cancelado have their own endpoints.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Order id"
// @Param        body  body      map[string]any  true  "Fields to merge"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /pedidos/{id} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	fields, err := h.bindFields(c)
	if err != nil {
		return err
	}

	order, err := h.service.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// SetStatus handles PUT /pedidos/:id/estado.
//
// @Summary      Advance the order status
// @Description  solicitado → descargado → capturado; any other move is rejected.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Order id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /pedidos/{id}/estado [put]
func (h *OrderHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), req.NuevoEstado)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Cancel handles PUT /pedidos/:id/cancelar.
//
// @Summary      Cancel an order
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderMessageResponse
// @Failure      404  {object}  errorBody
// @Router       /pedidos/{id}/cancelar [put]
func (h *OrderHandler) Cancel(c echo.Context) error {
	order, err := h.service.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Pedido cancelado exitosamente.",
		"pedido":  toOrderResponse(order),
	})
}

// Reactivate handles PUT /pedidos/:id/reactivar.
//
// @Summary      Reactivate a cancelled order
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderMessageResponse
// @Failure      404  {object}  errorBody
// @Router       /pedidos/{id}/reactivar [put]
func (h *OrderHandler) Reactivate(c echo.Context) error {
	order, err := h.service.Reactivate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Pedido reactivado exitosamente.",
		"pedido":  toOrderResponse(order),
	})
}

// Delete handles DELETE /pedidos/:id.
//
// @Summary      Delete an order
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  messageResponse
// @Router       /pedidos/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Pedido eliminado exitosamente."})
}

// ListByVendor handles GET /pedidos/vendedor/:vendedorId.
//
// @Summary      Orders of a vendor's clients
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        vendedorId  path      string  true  "Vendor id"
// @Success      200         {array}   orderResponse
// @Router       /pedidos/vendedor/{vendedorId} [get]
func (h *OrderHandler) ListByVendor(c echo.Context) error {
	orders, err := h.service.ListByVendorClients(c.Request().Context(), c.Param("vendedorId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVendorOrderListResponse(orders))
}

// History handles GET /pedidos/:id/eventos.
//
// @Summary      Order audit trail
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {array}   orderEventResponse
// @Failure      404  {object}  errorBody
// @Router       /pedidos/{id}/eventos [get]
func (h *OrderHandler) History(c echo.Context) error {
	events, err := h.service.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderEventListResponse(events))
}
