// @title        Job Queue Gateway API
// @version      1.0
// @description  Token issuance and bearer-protected access to the recommendation job queue.
// @BasePath     /
//
// @securityDefinitions.basic  BasicAuth
//
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

	"github.com/99minutos/jobqueue-gateway/internal/api"
	"github.com/99minutos/jobqueue-gateway/internal/api/handler"
	mongodb "github.com/99minutos/jobqueue-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/jobqueue-gateway/internal/infrastructure/db/redis"
	"github.com/99minutos/jobqueue-gateway/internal/pkg/config"
	"github.com/99minutos/jobqueue-gateway/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "jobqueue-gateway",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		_ = mongoClient.Disconnect(context.Background())
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	users := mongodb.NewUserRepository(db)
	jobs := mongodb.NewJobRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure user indexes")
	}
	if err := jobs.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure job indexes")
	}

	e := api.NewRouter(api.Deps{
		Config:      cfg,
		Users:       users,
		Jobs:        jobs,
		Idempotency: redisdb.NewIdempotencyStore(rdb),
		Logger:      log,
		Checks: map[string]handler.Check{
			"mongodb": mongodb.Ping(mongoClient),
			"redis":   redisdb.Ping(rdb),
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
	log.Info().Msg("stopped")
}
