package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gatherhub/event-catalog-service/internal/config"
	"github.com/gatherhub/event-catalog-service/internal/coordinator"
	"github.com/gatherhub/event-catalog-service/internal/domain"
	"github.com/gatherhub/event-catalog-service/internal/logger"
	"github.com/gatherhub/event-catalog-service/internal/remote/postgres"
)

func main() {
	// Load .env if present; real deployments pass environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting mirror service",
		zap.String("environment", cfg.Service.Environment))

	ctx := context.Background()

	// Initialize Postgres client
	pgClient, err := postgres.NewClient(ctx, &cfg.Postgres, log)
	if err != nil {
		log.Fatal("Failed to create Postgres client", zap.Error(err))
	}
	defer pgClient.Close()

	// Initialize remote store and schema (create tables if not exist)
	store := postgres.NewStore(pgClient, log)
	if err := store.InitSchema(ctx, cfg.Feed.Channel); err != nil {
		log.Fatal("Failed to initialize schema", zap.Error(err))
	}
	log.Info("Database schema initialized")

	// Initialize change feed listener
	listener := postgres.NewListener(pgClient, cfg.Feed, log)

	// Initialize view coordinator
	coord := coordinator.New(store, listener, domain.FilterCriteria{}, log)
	coord.Notify(func(view coordinator.View) {
		criteria := coord.Criteria()
		fields := []zap.Field{
			zap.String("status", string(view.Status)),
			zap.Int("visible_count", len(view.VisibleRecords)),
			zap.String("query", criteria.Query),
		}
		if criteria.Category != nil {
			fields = append(fields, zap.String("category", *criteria.Category))
		}
		log.Info("Catalog view updated", fields...)
	})

	// Start health check endpoint
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if err := store.Ping(r.Context()); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Feed.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	// Start mirror
	mirrorCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Mirror starting")

	if err := coord.Start(mirrorCtx); err != nil {
		log.Fatal("Mirror error", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down mirror gracefully")
	coord.Stop()
}
