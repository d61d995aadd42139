// Command venuewatch runs the venue-search plugin inside an in-process host,
// printing coffee shops near Berkeley on every tick and serving health,
// readiness, and metrics endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/venue-watch/internal/adapter/foursquare"
	"github.com/couchcryptid/venue-watch/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/venue-watch/internal/adapter/kafka"
	"github.com/couchcryptid/venue-watch/internal/config"
	"github.com/couchcryptid/venue-watch/internal/domain"
	"github.com/couchcryptid/venue-watch/internal/host"
	"github.com/couchcryptid/venue-watch/internal/observability"
	"github.com/couchcryptid/venue-watch/internal/plugin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := foursquare.NewClient(cfg.FoursquareTimeout, cfg.FoursquareMaxResponseBytes, metrics, logger)

	// Publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var publisher plugin.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	creds := domain.Credentials{
		ClientID:     cfg.FoursquareClientID,
		ClientSecret: cfg.FoursquareClientSecret,
	}
	runner := plugin.NewRunner(client, creds, plugin.NewPrinter(os.Stdout, os.Stderr), publisher, logger, metrics)

	h := host.NewLocal(clockwork.NewRealClock(), logger)
	h.AddInstance(host.NewInstance("main"))

	sub, err := plugin.Register(h, runner, cfg.QueryInterval, logger, metrics)
	if err != nil {
		logger.Error("failed to register venue plugin", "error", err)
		os.Exit(1)
	}
	logger.Info("venue plugin registered", "interval", cfg.QueryInterval, "instances", sub.Attached())

	srv := httpadapter.NewServer(cfg.HTTPAddr, sub, prometheus.DefaultGatherer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := sub.Close(); err != nil {
		logger.Error("venue plugin close error", "error", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
