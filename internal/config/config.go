package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	minSecretLength = 32
)

type Config struct {
	AppEnv        string `env:"APP_ENV" envDefault:"development"`
	Port          string `env:"PORT" envDefault:"8080"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	Database struct {
		Driver string `env:"DB_DRIVER" envDefault:"postgres"`
		URL    string `env:"DATABASE_URL,required"`
	}

	JWT struct {
		Secret     string        `env:"JWT_SECRET,required"`
		AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"60m"`
		RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"24h"`
	}

	Log struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
	}

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	TokenRateLimit struct {
		Max    int           `env:"TOKEN_RATE_LIMIT_MAX" envDefault:"20"`
		Window time.Duration `env:"TOKEN_RATE_LIMIT_WINDOW" envDefault:"1m"`
	}

	Email struct {
		ResendAPIKey string `env:"RESEND_API_KEY"`
		FromAddress  string `env:"EMAIL_FROM_ADDRESS" envDefault:"no-reply@localhost"`
		FromName     string `env:"EMAIL_FROM_NAME" envDefault:"Events"`
	}
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver))
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if !c.IsDevelopment() && len(c.JWT.Secret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes outside development", minSecretLength))
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive"))
	}
	if c.TokenRateLimit.Max <= 0 || c.TokenRateLimit.Window <= 0 {
		errs = append(errs, errors.New("TOKEN_RATE_LIMIT_MAX and TOKEN_RATE_LIMIT_WINDOW must be positive"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
