package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, DSN)
// - default: Values common across all environments (timeouts, shares, formats)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Catalog CatalogConfig
	Drop    DropConfig
	Session SessionConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// StoreConfig selects the drop-state store driver. The memory driver needs no
// further settings; postgres reads the DB_* values, redis the REDIS_* values.
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"memory"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"qomo"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"qomo_drops"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
}

type CatalogConfig struct {
	// Path to a JSON array of drop configs; the built-in demo catalog is used
	// when empty.
	Path string `envconfig:"CATALOG_PATH" default:""`
}

type DropConfig struct {
	LockDuration time.Duration `envconfig:"DROP_LOCK_DURATION" default:"30s"`
}

type SessionConfig struct {
	Secret   string        `envconfig:"SESSION_SECRET" required:"true"`
	Duration time.Duration `envconfig:"SESSION_DURATION" default:"24h"`
	Domain   string        `envconfig:"SESSION_COOKIE_DOMAIN" default:""`
	Secure   bool          `envconfig:"SESSION_COOKIE_SECURE" default:"false"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

func (c *StoreConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver: "memory",
		},
		Drop: DropConfig{
			LockDuration: 30 * time.Second,
		},
		Session: SessionConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
	}
}
