//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/venue-watch/internal/adapter/kafka"
	"github.com/couchcryptid/venue-watch/internal/config"
	"github.com/couchcryptid/venue-watch/internal/domain"
	"github.com/couchcryptid/venue-watch/internal/observability"
	"github.com/couchcryptid/venue-watch/internal/plugin"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testTopic = "test-venue-results"

// publishedMessage holds a deserialized message read from the results topic.
type publishedMessage struct {
	Venue   domain.Venue
	Key     string
	Headers map[string]string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("venue-watch-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		require.NoError(t, testcontainers.TerminateContainer(ctr))
	})

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from results topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var venue domain.Venue
	require.NoError(t, json.Unmarshal(msg.Value, &venue), "unmarshal venue message")

	return publishedMessage{Venue: venue, Key: string(msg.Key), Headers: headers}
}

// TestRunnerPublishesToKafka runs one venue query against a stub Foursquare
// server and verifies every venue lands on the results topic.
func TestRunnerPublishesToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"response":{"venues":[{"name":"Cafe A","location":{"distance":120}},{"name":"Cafe B","location":{"distance":300}}]}}`)
	}))
	t.Cleanup(api.Close)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	runner := plugin.NewRunner(
		stubQuerier{baseURL: api.URL},
		domain.Credentials{ClientID: "ID1", ClientSecret: "SEC1"},
		plugin.NewPrinter(io.Discard, io.Discard),
		writer,
		discardLogger(),
		observability.NewMetricsForTesting(),
	)
	require.NoError(t, runner.Run(ctx, "nav-1"))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	first := readPublished(ctx, t, consumer)
	second := readPublished(ctx, t, consumer)

	assert.Equal(t, "Cafe A", first.Key)
	assert.Equal(t, domain.Venue{Index: 0, Name: "Cafe A", Distance: 120}, first.Venue)
	assert.Equal(t, domain.Venue{Index: 1, Name: "Cafe B", Distance: 300}, second.Venue)
	assert.Equal(t, "nav-1", first.Headers["instance_id"])
	assert.Equal(t, "2", first.Headers["venue_count"])
	_, err := time.Parse(time.RFC3339, first.Headers["fetched_at"])
	assert.NoError(t, err, "fetched_at should be valid RFC3339")
}

// stubQuerier fetches the stub server body and runs the real extractor.
type stubQuerier struct {
	baseURL string
}

func (q stubQuerier) FetchVenues(ctx context.Context, _ domain.Credentials, emit func(domain.Venue)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return domain.Extract(body, emit)
}
