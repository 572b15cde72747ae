package handler

// errorBody documents the error envelope rendered by the API error handler.
type errorBody struct {
	Error string `json:"error" example:"order not found"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- usuarios ---

type createUserRequest struct {
	Nombre     string `json:"nombre" form:"nombre" validate:"required"`
	Email      string `json:"email" form:"email" validate:"required,email"`
	Password   string `json:"password" form:"password" validate:"required"`
	Rol        string `json:"rol" form:"rol" validate:"required,oneof=vendedor cliente admin"`
	VendedorID string `json:"vendedorId" form:"vendedorId" validate:"required_if=Rol cliente"`
}

type updateUserRequest struct {
	Nombre   string `json:"nombre" form:"nombre"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Password string `json:"password" form:"password"`
}

// --- pedidos ---

type setStatusRequest struct {
	NuevoEstado string `json:"nuevoEstado" form:"nuevoEstado" validate:"required"`
}

// orderResponse is the wire shape of an order: the caller-defined fields
// flattened next to the fixed columns. Documentation only.
type orderResponse struct {
	ID        string `json:"id"`
	ClienteID string `json:"cliente_id"`
	Estado    string `json:"estado" example:"solicitado"`
	Cancelado bool   `json:"cancelado"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type orderMessageResponse struct {
	Message string        `json:"message"`
	Pedido  orderResponse `json:"pedido"`
}

type orderEventResponse struct {
	Tipo           string `json:"tipo" example:"estado"`
	EstadoAnterior string `json:"estado_anterior,omitempty"`
	EstadoNuevo    string `json:"estado_nuevo,omitempty"`
	ActorID        string `json:"actor_id,omitempty"`
	OcurridoEn     string `json:"ocurrido_en"`
}
