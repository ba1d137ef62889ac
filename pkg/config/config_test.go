package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 8081, cfg.GRPCPort)
	assert.Equal(t, "postgres", cfg.Store)
	assert.Equal(t, 5*time.Second, cfg.TxTimeout)
	assert.Equal(t, []string{"log"}, cfg.Notify.Sinks)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORE", "Memory")
	t.Setenv("GRPC_PORT", "9090")
	t.Setenv("TX_TIMEOUT", "750ms")
	t.Setenv("NOTIFY_SINKS", " kafka, ,sendgrid ")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := Load()

	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, 750*time.Millisecond, cfg.TxTimeout)
	assert.Equal(t, []string{"kafka", "sendgrid"}, cfg.Notify.Sinks)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Notify.KafkaBrokers)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("TX_TIMEOUT", "-1s")
	t.Setenv("OTEL_INSECURE", "maybe")

	cfg := Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.TxTimeout)
	assert.True(t, cfg.OtelInsecure)
}
