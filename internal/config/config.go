package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// QueryInterval is the period of the recurring venue query per host instance.
	QueryInterval time.Duration

	// Foursquare API configuration.
	FoursquareClientID         string
	FoursquareClientSecret     string
	FoursquareTimeout          time.Duration
	FoursquareMaxResponseBytes int

	// Optional Kafka publishing of query reports.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	queryInterval, err := parsePositiveDuration("QUERY_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	timeout, err := parsePositiveDuration("FOURSQUARE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	maxResponseBytes, err := parseMaxResponseBytes()
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		QueryInterval:   queryInterval,

		FoursquareClientID:         os.Getenv("FOURSQUARE_CLIENT_ID"),
		FoursquareClientSecret:     os.Getenv("FOURSQUARE_CLIENT_SECRET"),
		FoursquareTimeout:          timeout,
		FoursquareMaxResponseBytes: maxResponseBytes,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "venue-results"),
	}

	if cfg.FoursquareClientID == "" {
		return nil, errors.New("FOURSQUARE_CLIENT_ID is required")
	}
	if cfg.FoursquareClientSecret == "" {
		return nil, errors.New("FOURSQUARE_CLIENT_SECRET is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when publishing is enabled")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseMaxResponseBytes() (int, error) {
	s := os.Getenv("FOURSQUARE_MAX_RESPONSE_BYTES")
	if s == "" {
		return 8 << 20, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid FOURSQUARE_MAX_RESPONSE_BYTES")
	}
	return n, nil
}
