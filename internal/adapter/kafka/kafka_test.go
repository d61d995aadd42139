package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/venue-watch/internal/config"
	"github.com/couchcryptid/venue-watch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2013, 10, 16, 9, 30, 0, 0, time.UTC)
	report := domain.Report{
		InstanceID: "nav-1",
		FetchedAt:  now,
		Venues: []domain.Venue{
			{Index: 0, Name: "Cafe A", Distance: 120},
			{Index: 1, Name: "Cafe B", Distance: 300},
		},
	}

	msg, err := serializeToMessage(report, report.Venues[1])
	require.NoError(t, err)

	assert.Equal(t, []byte("Cafe B"), msg.Key)
	assert.JSONEq(t, `{"index":1,"name":"Cafe B","distance":300}`, string(msg.Value))
	assert.Equal(t, now, msg.Time)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "instance_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("nav-1"), msg.Headers[0].Value)
	assert.Equal(t, "fetched_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
	assert.Equal(t, "venue_count", msg.Headers[2].Key)
	assert.Equal(t, []byte("2"), msg.Headers[2].Value)
}

func TestWriter_PublishEmptyReportIsNoop(t *testing.T) {
	w := NewWriter(&config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaTopic: "venue-results"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.Publish(context.Background(), domain.Report{InstanceID: "nav-1"}))
}
