package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Behyna/sms-services/scheduler/internal/cli"
	"github.com/Behyna/sms-services/scheduler/internal/config"
	"github.com/Behyna/sms-services/scheduler/internal/logging"
	"github.com/Behyna/sms-services/scheduler/internal/metrics"
	"github.com/Behyna/sms-services/scheduler/internal/service"
	"github.com/Behyna/sms-services/scheduler/pkg/httpclient"
	"github.com/Behyna/sms-services/scheduler/pkg/schedulerapi"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	var console *cli.Console
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.Load,
			NewLogger,
			NewMetrics,
			NewSchedulerClient,
			NewNotifier,
			NewPage,
			NewConsole,
		),
		fx.Populate(&console),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := console.Run(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

// NewLogger keeps the terminal quiet unless debug logging is configured.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.Level != "debug" {
		cfg.Log.Level = "error"
	}
	return logging.NewLogger(cfg)
}

// NewMetrics uses a private registry; a one-shot command exposes nothing.
func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func NewSchedulerClient(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) schedulerapi.Client {
	client := schedulerapi.NewClient(cfg.API, httpclient.NewHTTPClient(cfg.API.Timeout))
	return service.NewInstrumentedClient(client, m, logger)
}

func NewNotifier() service.Notifier {
	return service.NewWriterNotifier(os.Stdout, os.Stderr)
}

func NewPage(client schedulerapi.Client, notifier service.Notifier, cfg *config.Config,
	m *metrics.Metrics, logger *zap.Logger) *service.Page {
	return service.NewPage(client, notifier, logger, m, service.PageConfig{Location: cfg.Location()})
}

func NewConsole(page *service.Page, logger *zap.Logger) *cli.Console {
	return cli.NewConsole(page, os.Stdin, os.Stdout, os.Stderr, logger)
}
