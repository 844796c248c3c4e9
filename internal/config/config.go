// Package config centralises configuration parsing for the signup service.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures runtime configuration values for the API and consumer binaries.
type Config struct {
	HTTPAddress       string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	MetricsAddress    string        `env:"METRICS_ADDRESS" envDefault:":9195"`
	HTTPReadTimeout   time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	HTTPWriteTimeout  time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	HTTPIdleTimeout   time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	CORSAllowedOrigin string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
	StaticDir         string        `env:"STATIC_DIR"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	KafkaBrokers       []string      `env:"KAFKA_BROKERS" envSeparator:","`
	RegistrationTopic  string        `env:"REGISTRATION_TOPIC" envDefault:"registration_events"`
	OutboxBufferSize   int           `env:"OUTBOX_BUFFER_SIZE" envDefault:"256"`
	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"2s"`
	OutboxBatchSize    int           `env:"OUTBOX_BATCH_SIZE" envDefault:"25"`
	ConsumerGroupID    string        `env:"CONSUMER_GROUP_ID" envDefault:"activity-roster-consumer"`
}

// LoadDotEnv copies variables from the given files (default .env) into the
// process environment. Variables already set win over the file. It reports
// false without an error when the file does not exist.
func LoadDotEnv(files ...string) (bool, error) {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load .env: %w", err)
	}
	return true, nil
}

// Parse reads configuration from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.KafkaBrokers = trimEmpty(cfg.KafkaBrokers)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the binaries cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddress) == "" {
		return errors.New("HTTP_ADDRESS must not be empty")
	}
	if c.OutboxBufferSize <= 0 {
		return errors.New("OUTBOX_BUFFER_SIZE must be > 0")
	}
	if c.OutboxBatchSize <= 0 {
		return errors.New("OUTBOX_BATCH_SIZE must be > 0")
	}
	if c.OutboxPollInterval <= 0 {
		return errors.New("OUTBOX_POLL_INTERVAL must be > 0")
	}
	if len(c.KafkaBrokers) > 0 && strings.TrimSpace(c.RegistrationTopic) == "" {
		return errors.New("REGISTRATION_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// EventsEnabled reports whether registration events should be shipped to Kafka.
func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func trimEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
