package router

import (
	"github.com/anonto42/nano-midea/gateway/internal/handlers"
	"github.com/anonto42/nano-midea/gateway/pkg/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// SetupRoutes configures the application routes and injects dependencies
func SetupRoutes(e *echo.Echo, executor handlers.Executor, v *validators.Validator, log logrus.FieldLogger) {
	e.Validator = v

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	graphQLHandler := handlers.NewGraphQLHandler(executor)
	graphQLHandler.RegisterGraphQLRoutes(e.Group(""))
	log.Info("GraphQL routes configured.")
}

// SetupMetrics serves the metrics gathered by g on /metrics.
func SetupMetrics(e *echo.Echo, g prometheus.Gatherer) {
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}
