package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "ID1"
	testClientSecret = "SEC1"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("FOURSQUARE_CLIENT_ID", testClientID)
	t.Setenv("FOURSQUARE_CLIENT_SECRET", testClientSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.QueryInterval)
	assert.Equal(t, testClientID, cfg.FoursquareClientID)
	assert.Equal(t, testClientSecret, cfg.FoursquareClientSecret)
	assert.Equal(t, 10*time.Second, cfg.FoursquareTimeout)
	assert.Equal(t, 8<<20, cfg.FoursquareMaxResponseBytes)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "venue-results", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	setCredentials(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("QUERY_INTERVAL", "1m")
	t.Setenv("FOURSQUARE_TIMEOUT", "3s")
	t.Setenv("FOURSQUARE_MAX_RESPONSE_BYTES", "65536")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "cafes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Minute, cfg.QueryInterval)
	assert.Equal(t, 3*time.Second, cfg.FoursquareTimeout)
	assert.Equal(t, 65536, cfg.FoursquareMaxResponseBytes)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "cafes", cfg.KafkaTopic)
}

func TestLoad_MissingClientID(t *testing.T) {
	t.Setenv("FOURSQUARE_CLIENT_ID", "")
	t.Setenv("FOURSQUARE_CLIENT_SECRET", testClientSecret)
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOURSQUARE_CLIENT_ID")
}

func TestLoad_MissingClientSecret(t *testing.T) {
	t.Setenv("FOURSQUARE_CLIENT_ID", testClientID)
	t.Setenv("FOURSQUARE_CLIENT_SECRET", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOURSQUARE_CLIENT_SECRET")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	setCredentials(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidQueryInterval(t *testing.T) {
	setCredentials(t)
	t.Setenv("QUERY_INTERVAL", "-5s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUERY_INTERVAL")
}

func TestLoad_InvalidFoursquareTimeout(t *testing.T) {
	setCredentials(t)
	t.Setenv("FOURSQUARE_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOURSQUARE_TIMEOUT")
}

func TestLoad_InvalidMaxResponseBytes(t *testing.T) {
	setCredentials(t)
	t.Setenv("FOURSQUARE_MAX_RESPONSE_BYTES", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOURSQUARE_MAX_RESPONSE_BYTES")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	setCredentials(t)
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	setCredentials(t)
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}
