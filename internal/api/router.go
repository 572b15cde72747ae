package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/vendemas/pedidos-api/docs"
	"github.com/vendemas/pedidos-api/internal/api/handler"
	"github.com/vendemas/pedidos-api/internal/api/middleware"
	"github.com/vendemas/pedidos-api/internal/core/ports"
	"github.com/vendemas/pedidos-api/internal/infrastructure/http/handlers"
)

// Deps lists everything the router wires into handlers.
type Deps struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Orders ports.OrderService
	// Readiness is optional; /health/ready is only mounted when set.
	Readiness *handlers.HealthDependenciesHandler

	JWTSecret   string
	CORSOrigins []string
	CORSMethods []string
	CORSHeaders []string
	Logger      zerolog.Logger
	// Registry receives the HTTP metrics; the default registry when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowMethods: d.CORSMethods,
		AllowHeaders: d.CORSHeaders,
	}))
	promCfg := echoprometheus.MiddlewareConfig{Namespace: "pedidos"}
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		promCfg.Registerer = d.Registry
		gatherer = d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Operational endpoints (no auth required) ---
	e.GET("/", handlers.Root)
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := middleware.Auth(d.JWTSecret)
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	orderHandler := handler.NewOrderHandler(d.Orders)

	// --- usuarios ---
	e.POST("/usuarios/login", authHandler.Login)

	usuarios := e.Group("/usuarios", auth)
	usuarios.POST("", userHandler.Create)
	usuarios.GET("", userHandler.List)
	usuarios.PUT("/:id", userHandler.Update)
	usuarios.DELETE("/:id", userHandler.Delete)
	usuarios.GET("/vendedor/:vendedorId/clientes", userHandler.ClientsOfVendor)

	// --- pedidos ---
	pedidos := e.Group("/pedidos", auth)
	pedidos.POST("", orderHandler.Create)
	pedidos.GET("", orderHandler.List)
	pedidos.GET("/vendedor/:vendedorId", orderHandler.ListByVendor)
	pedidos.GET("/:id", orderHandler.Get)
	pedidos.PUT("/:id", orderHandler.Update)
	pedidos.DELETE("/:id", orderHandler.Delete)
	pedidos.PUT("/:id/estado", orderHandler.SetStatus)
	pedidos.PUT("/:id/cancelar", orderHandler.Cancel)
	pedidos.PUT("/:id/reactivar", orderHandler.Reactivate)
	pedidos.GET("/:id/eventos", orderHandler.History)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
