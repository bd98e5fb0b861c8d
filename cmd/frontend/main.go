package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/influenceai/influence-frontend/internal/api"
	"github.com/influenceai/influence-frontend/internal/infrastructure/backend"
	redisdb "github.com/influenceai/influence-frontend/internal/infrastructure/db/redis"
	"github.com/influenceai/influence-frontend/internal/pkg/config"
	"github.com/influenceai/influence-frontend/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Msg("starting influence frontend")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The backend origin is resolved exactly once per process.
	apiBase := backend.APIBase(cfg.Backend.APIOrigin, cfg.Backend.PublicOrigin, log)
	gateway := backend.NewClient(apiBase, cfg.Backend.Timeout, log)

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	store := redisdb.NewSessionStore(rdb, cfg.Session.TTL)

	e := api.NewRouter(cfg, rdb, gateway, store, apiBase, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
