// Command seed creates the first admin account so the protected
// POST /usuarios endpoint can be reached.
package main

import (
	"context"
	"errors"

	"github.com/sethvargo/go-envconfig"

	"github.com/vendemas/pedidos-api/internal/core/domain"
	"github.com/vendemas/pedidos-api/internal/core/ports"
	"github.com/vendemas/pedidos-api/internal/core/service"
	"github.com/vendemas/pedidos-api/internal/infrastructure/db/postgres"
	"github.com/vendemas/pedidos-api/pkg/logger"
)

type seedConfig struct {
	DatabaseURL string `env:"DATABASE_URL, required"`
	Nombre      string `env:"SEED_ADMIN_NOMBRE, default=Administrador"`
	Email       string `env:"SEED_ADMIN_EMAIL, required"`
	Password    string `env:"SEED_ADMIN_PASSWORD, required"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
}

func main() {
	ctx := context.Background()

	var cfg seedConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		panic(err)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "pedidos-seed"})

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare schema")
	}

	users := postgres.NewUserRepository(pool)
	if _, err := users.FindByEmail(ctx, cfg.Email); err == nil {
		log.Info().Str("email", cfg.Email).Msg("admin already present")
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Fatal().Err(err).Msg("lookup failed")
	}

	// No image is uploaded, so the service needs no blob store.
	svc := service.NewUserService(users, postgres.NewRelationshipRepository(pool), nil, log)
	admin, err := svc.Register(ctx, ports.RegisterInput{
		Nombre:   cfg.Nombre,
		Email:    cfg.Email,
		Password: cfg.Password,
		Rol:      domain.RoleAdmin,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}
	log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("admin created")
}
