package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/EmployeeApp/internal/config"
	"github.com/GoArmGo/EmployeeApp/internal/core/ports"
	"github.com/GoArmGo/EmployeeApp/internal/database/client"
	"github.com/GoArmGo/EmployeeApp/internal/metrics"
	"github.com/GoArmGo/EmployeeApp/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

// Режимы запуска.
const (
	ModeServer = "server"
	ModeWorker = "worker"
)

type App struct {
	Config          *config.Config
	logger          *slog.Logger
	dbClient        *client.Client
	registry        *prometheus.Registry
	metrics         *metrics.Metrics
	employeeUseCase usecase.EmployeeUseCase
	eventConsumer   ports.EmployeeEventConsumer
	closeEvents     func()
}

// NewApp собирает приложение. eventConsumer и closeEvents равны nil, если события отключены.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	registry *prometheus.Registry,
	m *metrics.Metrics,
	employeeUseCase usecase.EmployeeUseCase,
	eventConsumer ports.EmployeeEventConsumer,
	closeEvents func(),
) *App {
	return &App{
		Config:          cfg,
		logger:          logger,
		dbClient:        dbClient,
		registry:        registry,
		metrics:         m,
		employeeUseCase: employeeUseCase,
		eventConsumer:   eventConsumer,
		closeEvents:     closeEvents,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в заданном режиме до SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		err = a.runServer(ctx)
	case ModeWorker:
		err = a.runWorker(ctx)
	default:
		err = fmt.Errorf("unknown mode %q (use %q or %q)", mode, ModeServer, ModeWorker)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.closeEvents != nil {
		a.closeEvents()
	}
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}
	return nil
}
