package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendemas/pedidos-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /usuarios.
//
// @Summary      Register a user
// @Description  A cliente must name an existing vendedor in vendedorId; the account is rolled back otherwise.
// @Tags         usuarios
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        nombre      formData  string  true   "Name"
// @Param        email       formData  string  true   "Email"
// @Param        password    formData  string  true   "Password"
// @Param        rol         formData  string  true   "vendedor | cliente | admin"
// @Param        vendedorId  formData  string  false  "Vendor id (required for cliente)"
// @Param        imagen      formData  file    false  "Profile image"
// @Success      201         {object}  domain.User
// @Failure      400         {object}  errorBody
// @Failure      401         {object}  errorBody
// @Failure      403         {object}  errorBody
// @Router       /usuarios [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	img, closeImg, err := formImage(c, "imagen")
	if err != nil {
		return err
	}
	defer closeImg()

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Nombre:     req.Nombre,
		Email:      req.Email,
		Password:   req.Password,
		Rol:        req.Rol,
		VendedorID: req.VendedorID,
		Imagen:     img,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// List handles GET /usuarios.
//
// @Summary      List users
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        rol  query     string  false  "Filter by role"
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorBody
// @Router       /usuarios [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context(), c.QueryParam("rol"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Update handles PUT /usuarios/:id. Empty fields are left unchanged.
//
// @Summary      Update a user
// @Tags         usuarios
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true   "User id"
// @Param        nombre    formData  string  false  "Name"
// @Param        email     formData  string  false  "Email"
// @Param        password  formData  string  false  "Password"
// @Param        imagen    formData  file    false  "New profile image"
// @Success      200       {object}  domain.User
// @Failure      400       {object}  errorBody
// @Failure      404       {object}  errorBody
// @Failure      500       {object}  errorBody
// @Router       /usuarios/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	img, closeImg, err := formImage(c, "imagen")
	if err != nil {
		return err
	}
	defer closeImg()

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Nombre:   &req.Nombre,
		Email:    &req.Email,
		Password: &req.Password,
		Imagen:   img,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /usuarios/:id.
//
// @Summary      Delete a user
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorBody
// @Router       /usuarios/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Usuario eliminado exitosamente."})
}

// ClientsOfVendor handles GET /usuarios/vendedor/:vendedorId/clientes.
//
// @Summary      List a vendor's clients
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        vendedorId  path      string  true  "Vendor id"
// @Success      200         {array}   domain.ClientSummary
// @Failure      404         {object}  errorBody
// @Router       /usuarios/vendedor/{vendedorId}/clientes [get]
func (h *UserHandler) ClientsOfVendor(c echo.Context) error {
	clients, err := h.service.ClientsOfVendor(c.Request().Context(), c.Param("vendedorId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}
