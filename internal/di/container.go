package di

import (
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EmployeeApp/internal/app"
	"github.com/GoArmGo/EmployeeApp/internal/config"
	"github.com/GoArmGo/EmployeeApp/internal/core/ports"
	"github.com/GoArmGo/EmployeeApp/internal/database/client"
	"github.com/GoArmGo/EmployeeApp/internal/database/postgres"
	"github.com/GoArmGo/EmployeeApp/internal/database/storage"
	"github.com/GoArmGo/EmployeeApp/internal/logger"
	"github.com/GoArmGo/EmployeeApp/internal/metrics"
	"github.com/GoArmGo/EmployeeApp/internal/rabbitmq"
	"github.com/GoArmGo/EmployeeApp/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Метрики
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// 3. Инициализация PostgreSQL клиента
	dbClient, err := client.NewClient(cfg, slogger, appMetrics)
	if err != nil {
		return nil, err
	}

	// 4. Инициализация хранилища
	employeeStorage, err := newEmployeeStorage(cfg, dbClient, appMetrics, slogger)
	if err != nil {
		_ = dbClient.Close()
		return nil, err
	}

	// 5. RabbitMQ, если настроен
	var (
		publisher   ports.EmployeeEventPublisher
		consumer    ports.EmployeeEventConsumer
		closeEvents func()
	)
	if cfg.EventsEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			_ = dbClient.Close()
			return nil, err
		}
		publisher = rabbitMQClient
		consumer = rabbitMQClient
		closeEvents = rabbitMQClient.Close
	} else {
		slogger.Info("RABBITMQ_URL is not set, employee events are disabled")
	}

	// 6. Бизнес-логика
	employeeUseCase := usecase.NewEmployeeUseCase(employeeStorage, publisher, appMetrics, slogger)

	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		reg,
		appMetrics,
		employeeUseCase,
		consumer,
		closeEvents,
	)

	slogger.Info("all dependencies initialized", "storage_driver", cfg.StorageDriver)
	return application, nil
}

// newEmployeeStorage выбирает реализацию хранилища по STORAGE_DRIVER.
// Обе работают поверх одного пула соединений dbClient.
func newEmployeeStorage(cfg *config.Config, dbClient *client.Client, m *metrics.Metrics, slogger *slog.Logger) (ports.EmployeeStorage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverGorm:
		gormDB, err := postgres.OpenGorm(dbClient.DB.DB)
		if err != nil {
			return nil, fmt.Errorf("open gorm: %w", err)
		}
		return postgres.NewGormEmployeeStorage(gormDB, slogger, m), nil
	default:
		return storage.NewEmployeeStorage(dbClient.DB, slogger, m), nil
	}
}
