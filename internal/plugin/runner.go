package plugin

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/venue-watch/internal/domain"
	"github.com/couchcryptid/venue-watch/internal/observability"
)

// Querier fetches venues and emits each one as it is validated.
type Querier interface {
	FetchVenues(ctx context.Context, creds domain.Credentials, emit func(domain.Venue)) error
}

// Publisher delivers the report of a successful query.
type Publisher interface {
	Publish(ctx context.Context, report domain.Report) error
}

// Runner performs one complete venue query: fetch, print, optionally publish.
type Runner struct {
	querier   Querier
	creds     domain.Credentials
	printer   *Printer
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// NewRunner creates a Runner. publisher may be nil.
func NewRunner(q Querier, creds domain.Credentials, printer *Printer, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		querier:   q,
		creds:     creds,
		printer:   printer,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one query has succeeded.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no venue query has succeeded yet")
	}
	return nil
}

// Run executes one query for the given host instance. Venues are printed as
// they are validated, so a structural failure still leaves the earlier
// venues printed. The returned error is terminal for this invocation only.
func (r *Runner) Run(ctx context.Context, instanceID string) error {
	start := time.Now()
	r.metrics.QueriesInFlight.Inc()
	defer r.metrics.QueriesInFlight.Dec()

	var venues []domain.Venue
	err := r.querier.FetchVenues(ctx, r.creds, func(v domain.Venue) {
		r.printer.Venue(v)
		venues = append(venues, v)
	})

	outcome := domain.Outcome(err)
	r.metrics.QueriesTotal.WithLabelValues(outcome).Inc()
	r.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	r.metrics.VenuesFound.Add(float64(len(venues)))

	if err != nil {
		if outcome == domain.OutcomeCanceled {
			r.logger.Info("venue query canceled", "instance", instanceID)
			return err
		}
		r.printer.Error(err)
		r.logger.Error("venue query failed",
			"instance", instanceID,
			"outcome", outcome,
			"venues_printed", len(venues),
			"error", err,
		)
		return err
	}

	r.ready.Store(true)
	r.logger.Debug("venue query finished",
		"instance", instanceID,
		"venues", len(venues),
		"duration", time.Since(start),
	)

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, domain.NewReport(instanceID, venues)); err != nil {
			r.metrics.PublishErrors.Inc()
			r.logger.Warn("publish venue report failed", "instance", instanceID, "error", err)
		}
	}
	return nil
}
