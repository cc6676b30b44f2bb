package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/Behyna/sms-services/scheduler/internal/api"
	v1 "github.com/Behyna/sms-services/scheduler/internal/api/v1"
	"github.com/Behyna/sms-services/scheduler/internal/config"
	"github.com/Behyna/sms-services/scheduler/internal/logging"
	"github.com/Behyna/sms-services/scheduler/internal/metrics"
	"github.com/Behyna/sms-services/scheduler/internal/service"
	"github.com/Behyna/sms-services/scheduler/pkg/httpclient"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	fx.New(
		fx.Provide(
			config.Load,
			logging.NewLogger,
			NewRegistry,
			NewMetrics,
			NewSchedulerClient,
			NewNotificationQueue,
			NewPage,
			api.NewApp,
			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, page *service.Page, registry *prometheus.Registry,
	cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle,
) {
	api.SetupRoutes(app, handler, registry)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// The console still starts when the backend is down; the list stays empty.
			_ = page.Load(ctx)

			go func() {
				if err := app.Listen(cfg.Web.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("console server stopped", zap.Error(err))
				}
			}()

			logger.Info("console server started",
				zap.String("port", cfg.Web.Port),
				zap.String("backend", cfg.API.BaseURL))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping console server")
			_ = logger.Sync()
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func NewMetrics(registry *prometheus.Registry) *metrics.Metrics {
	return metrics.NewMetrics(registry)
}

func NewSchedulerClient(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) schedulerapi.Client {
	client := schedulerapi.NewClient(cfg.API, httpclient.NewHTTPClient(cfg.API.Timeout))
	return service.NewInstrumentedClient(client, m, logger)
}

func NewNotificationQueue(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *service.NotificationQueue {
	return service.NewNotificationQueue(cfg.UI.NotificationBuffer, logger, m)
}

func NewPage(client schedulerapi.Client, queue *service.NotificationQueue, cfg *config.Config,
	m *metrics.Metrics, logger *zap.Logger) *service.Page {
	return service.NewPage(client, queue, logger, m, service.PageConfig{Location: cfg.Location()})
}
