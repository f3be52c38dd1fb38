package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pscheid92/hello-env/internal/bootstrap"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv     string `env:"ENV" default:"dev"`
	DBPassword string `env:"DB_PASSWORD" default:"not set"`

	Host        string `env:"HOST" default:"0.0.0.0"`
	Port        string `env:"PORT" default:"8080"`
	MetricsPort string `env:"METRICS_PORT"`
	SecretsFile string `env:"SECRETS_FILE" default:"/vault/secrets/config"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`

	secrets map[string]string
}

// Load builds the configuration. Bootstrapped secrets take precedence over the
// process environment, which is never modified.
func Load(secrets map[string]string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, &env.Options{Source: overlaySource{secrets: secrets}}); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg.secrets = secrets

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SecretsPath returns the secrets file location before the full config exists.
func SecretsPath() string {
	if path, ok := os.LookupEnv("SECRETS_FILE"); ok && path != "" {
		return path
	}
	return bootstrap.DefaultSecretsFile
}

// Lookup resolves a variable the same way Load does.
func (c *Config) Lookup(key string) (string, bool) {
	return overlaySource{secrets: c.secrets}.LookupEnv(key)
}

// Addr is the listen address of the public server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

type overlaySource struct {
	secrets map[string]string
}

func (s overlaySource) LookupEnv(key string) (string, bool) {
	if v, ok := s.secrets[key]; ok {
		return v, true
	}
	return os.LookupEnv(key)
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

func validate(cfg *Config) error {
	if err := validatePort("PORT", cfg.Port); err != nil {
		return err
	}
	if cfg.MetricsPort != "" {
		if err := validatePort("METRICS_PORT", cfg.MetricsPort); err != nil {
			return err
		}
		if cfg.MetricsPort == cfg.Port {
			return errors.New("METRICS_PORT must differ from PORT")
		}
	}

	if !slices.Contains(logLevels, cfg.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of %v, got %q", logLevels, cfg.LogLevel)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return fmt.Errorf("LOG_FORMAT must be one of %v, got %q", logFormats, cfg.LogFormat)
	}

	if cfg.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}

	return nil
}

func validatePort(name, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be numeric: %w", name, err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return nil
}
