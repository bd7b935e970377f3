package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gatherhub/event-catalog-service/docs"
	"github.com/gatherhub/event-catalog-service/internal/cache/redis"
	"github.com/gatherhub/event-catalog-service/internal/config"
	"github.com/gatherhub/event-catalog-service/internal/coordinator"
	"github.com/gatherhub/event-catalog-service/internal/domain"
	"github.com/gatherhub/event-catalog-service/internal/handler"
	"github.com/gatherhub/event-catalog-service/internal/logger"
	"github.com/gatherhub/event-catalog-service/internal/remote/postgres"
	"github.com/gatherhub/event-catalog-service/internal/service"
)

// @title Event Catalog Service API
// @version 1.0
// @description API for browsing, managing and registering for events backed by a continuously synchronized catalog mirror
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	// Load .env if present; real deployments pass environment directly.
	_ = godotenv.Load()

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

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

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

	// Initialize view coordinator and start the catalog mirror
	coord := coordinator.New(store, listener, domain.FilterCriteria{}, log)
	if err := coord.Start(ctx); err != nil {
		log.Fatal("Failed to start view coordinator", zap.Error(err))
	}
	defer coord.Stop()

	// Initialize ticket cache when configured
	var tickets service.TicketCache
	if cfg.Redis.Addr != "" && cfg.Redis.TicketCacheEnabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to create Redis client", zap.Error(err))
		}
		tickets = redis.NewTicketCache(redisClient, &cfg.Redis, log)
	}

	// Initialize catalog service
	catalogService := service.NewCatalogService(store, coord, tickets, log)

	// Initialize handler
	h := handler.NewHandler(catalogService, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	server := &http.Server{
		Addr:    addr,
		Handler: h,
	}

	go func() {
		log.Info("API server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down API server gracefully")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down API server", zap.Error(err))
	}
}
