package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Драйверы хранилища, между которыми можно переключаться через STORAGE_DRIVER.
const (
	StorageDriverSQLX = "sqlx"
	StorageDriverGorm = "gorm"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort string `env:"PORT" envDefault:"5000"`

	Database struct {
		Host         string `env:"DB_HOST" envDefault:"db"`
		User         string `env:"DB_USER" envDefault:"user"`
		Password     string `env:"DB_PASSWORD" envDefault:"password"`
		Name         string `env:"DB_NAME" envDefault:"cruddb"`
		Port         string `env:"DB_PORT" envDefault:"5432"`
		SSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
		MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	}

	StorageDriver          string        `env:"STORAGE_DRIVER" envDefault:"sqlx"`
	BootstrapRetryInterval time.Duration `env:"BOOTSTRAP_RETRY_INTERVAL" envDefault:"5s"`
	ShutdownTimeout        time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"employee_events"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Если в рабочей директории есть .env файл, он загружается первым.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}

	switch cfg.StorageDriver {
	case StorageDriverSQLX, StorageDriverGorm:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (use %q or %q)",
			cfg.StorageDriver, StorageDriverSQLX, StorageDriverGorm)
	}

	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}

	return &cfg, nil
}

// DSN собирает строку подключения к PostgreSQL из отдельных параметров.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": []string{c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

// EventsEnabled сообщает, настроена ли публикация событий в RabbitMQ.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQ.RabbitMQURL != ""
}
