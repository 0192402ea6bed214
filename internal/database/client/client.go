package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/GoArmGo/EmployeeApp/internal/config"
	"github.com/GoArmGo/EmployeeApp/internal/database/migrations"
	"github.com/GoArmGo/EmployeeApp/internal/metrics"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DefaultRetryInterval — пауза между попытками создать схему.
const DefaultRetryInterval = 5 * time.Second

// SchemaInitFunc создаёт таблицу employees, если её ещё нет.
type SchemaInitFunc func(ctx context.Context, db *sqlx.DB) error

// Client владеет пулом соединений с PostgreSQL и отвечает за начальное создание схемы.
// Создаётся один раз в di и передаётся хранилищам и обработчикам.
type Client struct {
	DB       *sqlx.DB
	logger   *slog.Logger
	metrics  *metrics.Metrics
	initFn   SchemaInitFunc
	interval time.Duration
	ready    atomic.Bool
}

// Option настраивает Client.
type Option func(*Client)

// WithRetryInterval задаёт паузу между попытками Bootstrap.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithSchemaInit подменяет функцию создания схемы.
func WithSchemaInit(fn SchemaInitFunc) Option {
	return func(c *Client) {
		c.initFn = fn
	}
}

// NewClient открывает пул соединений с PostgreSQL.
// Соединение устанавливается лениво: недоступная бд не мешает старту,
// её дожидается Bootstrap.
func NewClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics, opts ...Option) (*Client, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Error("failed to open PostgreSQL pool", "error", err)
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("PostgreSQL pool configured",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
		"max_open_conns", cfg.Database.MaxOpenConns,
	)

	opts = append([]Option{WithRetryInterval(cfg.BootstrapRetryInterval)}, opts...)
	return NewClientFromDB(db, logger, m, opts...), nil
}

// NewClientFromDB оборачивает уже открытый пул.
func NewClientFromDB(db *sqlx.DB, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Client {
	c := &Client{
		DB:       db,
		logger:   logger,
		metrics:  m,
		initFn:   applyMigrations,
		interval: DefaultRetryInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bootstrap создаёт таблицу, если её нет. При любой ошибке ждёт фиксированный
// интервал и пробует снова, без ограничения числа попыток. Возвращает nil после
// первой удачной попытки или ошибку контекста при отмене.
func (c *Client) Bootstrap(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		start := time.Now()
		err := c.initFn(ctx, c.DB)
		if err == nil {
			c.ready.Store(true)
			c.metrics.BootstrapAttempts.WithLabelValues("success").Inc()
			c.logger.Info("database initialized successfully",
				"attempt", attempt,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return nil
		}

		c.metrics.BootstrapAttempts.WithLabelValues("failure").Inc()
		c.logger.Error("error initializing database",
			"attempt", attempt,
			"retry_in", c.interval.String(),
			"error", err,
		)

		timer := time.NewTimer(c.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Ready сообщает, была ли схема успешно создана.
func (c *Client) Ready() bool {
	return c.ready.Load()
}

// Ping проверяет доступность бд.
func (c *Client) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// applyMigrations применяет встроенные миграции к бд
func applyMigrations(ctx context.Context, db *sqlx.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = src.Close()
		return fmt.Errorf("acquire connection for migrations: %w", err)
	}

	driver, err := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	if err != nil {
		_ = src.Close()
		_ = conn.Close()
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	return migrateUp(m)
}

// migrator — часть *migrate.Migrate, нужная для migrateUp.
type migrator interface {
	Up() error
	Force(version int) error
}

// migrateUp применяет миграции. Версия dirty от прерванного запуска сбрасывается, и Up повторяется.
func migrateUp(m migrator) error {
	err := m.Up()
	var dirty migrate.ErrDirty
	if errors.As(err, &dirty) {
		if forceErr := m.Force(database.NilVersion); forceErr != nil {
			return fmt.Errorf("reset dirty version %d: %w", dirty.Version, forceErr)
		}
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	start := time.Now()
	err := c.DB.Close()
	if err != nil {
		c.logger.Error("failed to close database connection", "error", err)
		return err
	}
	c.logger.Info("database connection closed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
