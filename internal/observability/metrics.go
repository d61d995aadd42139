package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for venue queries.
type Metrics struct {
	QueriesTotal      *prometheus.CounterVec // labels: outcome={success,transport,empty,parse,structure,allocation,url,canceled,unknown}
	QueriesSkipped    prometheus.Counter
	QueriesInFlight   prometheus.Gauge
	QueryDuration     prometheus.Histogram
	VenuesFound       prometheus.Counter
	InstancesAttached prometheus.Gauge

	// Foursquare API metrics.
	APIDuration   prometheus.Histogram
	ResponseBytes prometheus.Histogram

	PublishErrors prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_watch",
			Name:      "queries_total",
			Help:      "Venue queries by outcome.",
		}, []string{"outcome"}),
		QueriesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue_watch",
			Name:      "queries_skipped_total",
			Help:      "Scheduler ticks skipped because a query for the instance was still running.",
		}),
		QueriesInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "venue_watch",
			Name:      "queries_in_flight",
			Help:      "Venue queries currently running.",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "venue_watch",
			Name:      "query_duration_seconds",
			Help:      "Duration of a complete fetch-parse-print invocation.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		VenuesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue_watch",
			Name:      "venues_found_total",
			Help:      "Venues printed across all queries.",
		}),
		InstancesAttached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "venue_watch",
			Name:      "instances_attached",
			Help:      "Host instances with a recurring venue query.",
		}),
		APIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "venue_watch",
			Name:      "foursquare_api_duration_seconds",
			Help:      "Foursquare venue-search request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ResponseBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "venue_watch",
			Name:      "foursquare_response_bytes",
			Help:      "Size of buffered venue-search response bodies.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue_watch",
			Name:      "publish_errors_total",
			Help:      "Reports that could not be published to Kafka.",
		}),
	}

	prometheus.MustRegister(
		m.QueriesTotal,
		m.QueriesSkipped,
		m.QueriesInFlight,
		m.QueryDuration,
		m.VenuesFound,
		m.InstancesAttached,
		m.APIDuration,
		m.ResponseBytes,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		QueriesTotal:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "venue_watch", Name: "queries_total"}, []string{"outcome"}),
		QueriesSkipped:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "venue_watch", Name: "queries_skipped_total"}),
		QueriesInFlight:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "venue_watch", Name: "queries_in_flight"}),
		QueryDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "venue_watch", Name: "query_duration_seconds"}),
		VenuesFound:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "venue_watch", Name: "venues_found_total"}),
		InstancesAttached: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "venue_watch", Name: "instances_attached"}),
		APIDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "venue_watch", Name: "foursquare_api_duration_seconds"}),
		ResponseBytes:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "venue_watch", Name: "foursquare_response_bytes"}),
		PublishErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "venue_watch", Name: "publish_errors_total"}),
	}
}
