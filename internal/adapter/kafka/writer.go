package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/venue-watch/internal/config"
	"github.com/couchcryptid/venue-watch/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes venue reports to a Kafka topic, one message per venue.
// It implements plugin.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes every venue of the report in a single WriteMessages call.
// An empty report publishes nothing.
func (w *Writer) Publish(ctx context.Context, report domain.Report) error {
	if len(report.Venues) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(report.Venues))
	for i := range report.Venues {
		msg, err := serializeToMessage(report, report.Venues[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d venue messages: %w", len(msgs), err)
	}
	w.logger.Debug("venue report published", "instance", report.InstanceID, "venues", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals one venue of a report into a Kafka message
// keyed by venue name.
func serializeToMessage(report domain.Report, venue domain.Venue) (kafkago.Message, error) {
	data, err := json.Marshal(venue)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize venue: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(venue.Name),
		Value: data,
		Time:  report.FetchedAt,
		Headers: []kafkago.Header{
			{Key: "instance_id", Value: []byte(report.InstanceID)},
			{Key: "fetched_at", Value: []byte(report.FetchedAt.Format(time.RFC3339))},
			{Key: "venue_count", Value: []byte(strconv.Itoa(len(report.Venues)))},
		},
	}, nil
}
