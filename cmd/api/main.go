// @title                       Pedidos API
// @version                     1.0
// @description                 Users, vendor-client relationships and orders.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vendemas/pedidos-api/internal/api"
	"github.com/vendemas/pedidos-api/internal/core/service"
	"github.com/vendemas/pedidos-api/internal/infrastructure/db/mongo"
	"github.com/vendemas/pedidos-api/internal/infrastructure/db/postgres"
	"github.com/vendemas/pedidos-api/internal/infrastructure/db/redis"
	"github.com/vendemas/pedidos-api/internal/infrastructure/http/handlers"
	"github.com/vendemas/pedidos-api/internal/infrastructure/storage/s3"
	"github.com/vendemas/pedidos-api/internal/pkg/config"
	"github.com/vendemas/pedidos-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "pedidos-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare schema")
	}

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	blobs, err := s3.New(ctx, s3.Config{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure blob storage")
	}

	users := postgres.NewUserRepository(pool)
	links := postgres.NewRelationshipRepository(pool)
	orders := postgres.NewOrderRepository(pool)
	events := mongo.NewOrderEventRepository(mongoDB)
	idem := redis.NewIdempotencyStore(rdb)

	e := api.NewRouter(api.Deps{
		Auth:        service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth")),
		Users:       service.NewUserService(users, links, blobs, logger.Component("users")),
		Orders:      service.NewOrderService(orders, users, links, events, idem, logger.Component("orders")),
		Readiness:   handlers.NewHealthDependenciesHandler(pool, mongoDB, rdb),
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORS.Origins,
		CORSMethods: cfg.CORS.Methods,
		CORSHeaders: cfg.CORS.Headers,
		Logger:      logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
