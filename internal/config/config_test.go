package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddress)
	require.Equal(t, "registration_events", cfg.RegistrationTopic)
	require.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
	require.Equal(t, 25, cfg.OutboxBatchSize)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.KafkaBrokers)
	require.False(t, cfg.EventsEnabled())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9000")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv("OUTBOX_POLL_INTERVAL", "250ms")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := Parse()
	require.NoError(t, err)

	require.Equal(t, ":9000", cfg.HTTPAddress)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 250*time.Millisecond, cfg.OutboxPollInterval)
	require.True(t, cfg.LogDevelopment)
	require.True(t, cfg.EventsEnabled())
}

func TestParseRejectsInvalidValues(t *testing.T) {
	t.Setenv("OUTBOX_BATCH_SIZE", "0")

	_, err := Parse()
	require.ErrorContains(t, err, "OUTBOX_BATCH_SIZE")
}

func TestParseRejectsMalformedDuration(t *testing.T) {
	t.Setenv("OUTBOX_POLL_INTERVAL", "soon")

	_, err := Parse()
	require.ErrorContains(t, err, "parse env")
}

func TestLoadDotEnvReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STATIC_DIR=/srv/static\n"), 0o600))
	t.Setenv("STATIC_DIR", "")
	require.NoError(t, os.Unsetenv("STATIC_DIR"))

	loaded, err := LoadDotEnv(path)
	require.NoError(t, err)
	require.True(t, loaded)

	cfg, err := Parse()
	require.NoError(t, err)
	require.Equal(t, "/srv/static", cfg.StaticDir)
}

func TestLoadDotEnvReportsMissingFile(t *testing.T) {
	loaded, err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.False(t, loaded)
}
