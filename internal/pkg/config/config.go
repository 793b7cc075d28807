package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/quidpay/quidpay/internal/pkg/env"
)

// Config is built once at process start and handed to the components that
// need it. Request handlers never read environment variables directly.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Stripe   StripeConfig
}

type AppConfig struct {
	Host string
	Port string
}

type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// DSN returns the MySQL data source name for gorm.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// MigrateURL returns the connection URL used by golang-migrate.
func (d DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type CacheConfig struct {
	Host string
	Port string
}

func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

// MisconfigurationError lists required settings that are absent. Load returns
// it alongside a usable Config so the caller decides whether to abort startup
// or run degraded; components holding an empty credential fail closed at
// request time.
type MisconfigurationError struct {
	Missing []string
}

func (e *MisconfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// Load reads the full configuration from the environment. The returned error,
// if any, is always a *MisconfigurationError.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Host: env.GetEnv("APP_HOST", "localhost"),
			Port: env.GetEnv("APP_PORT", "4000"),
		},
		Database: DatabaseConfig{
			User:     env.GetEnv("DB_USER", "quidpay"),
			Password: env.GetEnv("DB_PASSWORD", "quidpay"),
			Host:     env.GetEnv("DB_HOST", "127.0.0.1"),
			Port:     env.GetEnv("DB_PORT", "3306"),
			Name:     env.GetEnv("DB_NAME", "quidpay_db"),
		},
		Cache: CacheConfig{
			Host: env.GetEnv("CACHE_HOST", "localhost"),
			Port: env.GetEnv("CACHE_PORT", "6379"),
		},
		Auth: AuthConfig{
			JWTSecret: env.GetEnv("JWT_SECRET_KEY", ""),
			TokenTTL:  30 * time.Minute,
		},
		Stripe: StripeConfig{
			SecretKey:     env.GetEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: env.GetEnv("STRIPE_WEBHOOK_SECRET", ""),
			Currency:      env.GetEnv("PAYMENT_CURRENCY", "gbp"),
		},
	}

	var missing []string
	if cfg.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET_KEY")
	}
	if cfg.Stripe.SecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if cfg.Stripe.WebhookSecret == "" {
		missing = append(missing, "STRIPE_WEBHOOK_SECRET")
	}
	if len(missing) > 0 {
		return cfg, &MisconfigurationError{Missing: missing}
	}
	return cfg, nil
}
