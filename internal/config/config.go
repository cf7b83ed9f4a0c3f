package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process configuration, read from the environment and an
// optional .env file.
type Config struct {
	AppPort     string
	Database    DatabaseConfig
	Session     SessionConfig
	RedisURL    string
	RabbitMQURL string
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
	Seed        bool
}

// DatabaseConfig selects the GORM driver.
type DatabaseConfig struct {
	Driver string // sqlite or postgres
	DSN    string
}

// SessionConfig controls the session cookie and bearer tokens.
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_PORT", ":5555")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "recipebox.db")
	v.SetDefault("SESSION_SECRET", "dev-secret-change-me")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("SEED", false)
	v.AutomaticEnv()

	ttl, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: must be positive")
	}

	cfg := &Config{
		AppPort: v.GetString("APP_PORT"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("SESSION_SECRET"),
			TTL:          ttl,
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		},
		RedisURL:    v.GetString("REDIS_URL"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   v.GetString("LOG_FORMAT"),
		Seed:        v.GetBool("SEED"),
	}

	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ORIGINS is required")
	}
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			// Session cookies need credentialed CORS, which forbids a wildcard origin.
			return nil, fmt.Errorf("invalid CORS_ORIGINS: wildcard origin is not allowed")
		}
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
