package api

import (
	"github.com/Behyna/sms-services/scheduler/internal/api/middleware"
	"github.com/Behyna/sms-services/scheduler/internal/config"
	"github.com/Behyna/sms-services/scheduler/internal/metrics"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// NewApp builds the console web server with its middleware chain. Routes are
// added by SetupRoutes.
func NewApp(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Web.ServiceName,
		ErrorHandler:          middleware.ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Header: schedulerapi.TrackIDHeader}))
	app.Use(middleware.HealthCheckMiddleware(cfg.Web.ServiceName))
	app.Use(middleware.HTTPMetricsMiddleware(m, logger))

	return app
}
