package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name           string `envconfig:"APP_NAME" default:"UMKM Kembar Barokah"`
		Port           int    `envconfig:"PORT" default:"5000"`
		AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	}

	DB struct {
		URL      string `envconfig:"DATABASE_URL"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"umkm"`
		TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Jakarta"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
		TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}

	// Admin is created at startup when both fields are set and the
	// username is still free.
	Admin struct {
		Username string `envconfig:"ADMIN_USERNAME"`
		Password string `envconfig:"ADMIN_PASSWORD"`
	}

	Log struct {
		Level    string `envconfig:"LOG_LEVEL" default:"info"`
		Encoding string `envconfig:"LOG_ENCODING" default:"console"`
	}

	Ledger struct {
		// Atomic wraps every stock-affecting sequence in one transaction.
		// false keeps the legacy statement-by-statement behaviour.
		Atomic bool `envconfig:"LEDGER_ATOMIC" default:"true"`
	}

	Forecast struct {
		URL      string        `envconfig:"FORECAST_URL" default:"http://localhost:5001"`
		Timeout  time.Duration `envconfig:"FORECAST_TIMEOUT" default:"30s"`
		CacheTTL time.Duration `envconfig:"FORECAST_CACHE_TTL" default:"10m"`
	}

	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}
}

// ConnectionString prefers DATABASE_URL and otherwise builds a key/value DSN.
func (c *Config) ConnectionString() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=%s",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port, c.DB.TimeZone,
	)
}

func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
