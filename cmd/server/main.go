package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/nano-midea/gateway/internal/graph"
	"github.com/anonto42/nano-midea/gateway/internal/loaders"
	"github.com/anonto42/nano-midea/gateway/internal/repositories"
	"github.com/anonto42/nano-midea/gateway/internal/router"
	"github.com/anonto42/nano-midea/gateway/pkg/config"
	"github.com/anonto42/nano-midea/gateway/pkg/logger"
	"github.com/anonto42/nano-midea/gateway/pkg/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Env)

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := repositories.Migrate(ctx, db.Postgres); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Info("PostgreSQL auto-migrations completed.")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	validator := validators.NewValidator()
	executor, err := graph.NewExecutor(repositories.NewPostgresStore(db.Postgres), graph.Options{
		MaxDepth:  cfg.MaxQueryDepth,
		MaxBatch:  cfg.MaxBatch,
		Metrics:   loaders.NewMetrics(registry),
		Logger:    log,
		Validator: validator.Engine(),
	})
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	// Create Echo instances
	e := echo.New()
	e.HideBanner = true
	config.SetupMiddleware(e, log)
	router.SetupRoutes(e, executor, validator, log)

	metrics := echo.New()
	metrics.HideBanner = true
	metrics.HidePort = true
	router.SetupMetrics(metrics, registry)

	go func() {
		if err := metrics.Start(":" + cfg.MetricsPort); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdown); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	if err := metrics.Shutdown(shutdown); err != nil {
		log.WithError(err).Error("metrics server shutdown")
	}
}
