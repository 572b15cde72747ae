package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Root handles GET / with the plain-text banner.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "API running")
}

// HealthHandler handles GET /health (liveness probe).
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles GET /health/ready (readiness probe).
// Postgres is required; the audit trail (Mongo) and idempotency store (Redis)
// are reported but only degrade the response.
type HealthDependenciesHandler struct {
	postgres *pgxpool.Pool
	mongo    *mongo.Database
	redis    *redis.Client
}

func NewHealthDependenciesHandler(pool *pgxpool.Pool, db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		postgres: pool,
		mongo:    db,
		redis:    rdb,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func check(err error) dependencyStatus {
	if err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := map[string]dependencyStatus{
		"postgres": check(h.postgres.Ping(ctx)),
		"mongodb":  check(h.mongo.Client().Ping(ctx, nil)),
		"redis":    check(h.redis.Ping(ctx).Err()),
	}

	status := "ok"
	httpStatus := http.StatusOK
	for name, d := range deps {
		if d.Status == "ok" {
			continue
		}
		if name == "postgres" {
			status = "unavailable"
			httpStatus = http.StatusServiceUnavailable
			break
		}
		status = "degraded"
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
