// Package plugin attaches a recurring venue query to every instance of a
// navigation host.
package plugin

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/venue-watch/internal/host"
	"github.com/couchcryptid/venue-watch/internal/observability"
)

// DefaultInterval is the query period used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// Subscription is the handle returned by Register. Close detaches the plugin
// from the host.
type Subscription struct {
	host     host.Host
	runner   *Runner
	interval time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	closed      bool
	unregister  func()
	attachments map[string]*attachment
}

// attachment is the recurring query of one host instance.
type attachment struct {
	instance host.Instance
	stop     func()
	running  atomic.Bool
}

// Register attaches runner to every running instance of h and to every
// instance started later. A non-positive interval selects DefaultInterval.
func Register(h host.Host, runner *Runner, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) (*Subscription, error) {
	if h == nil {
		return nil, errors.New("register venue plugin: nil host")
	}
	if runner == nil {
		return nil, errors.New("register venue plugin: nil runner")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Subscription{
		host:        h,
		runner:      runner,
		interval:    interval,
		logger:      logger,
		metrics:     metrics,
		ctx:         ctx,
		cancel:      cancel,
		attachments: make(map[string]*attachment),
	}

	logger.Debug("venue plugin init")
	unregister := h.RegisterInitHook(s.attach)
	s.mu.Lock()
	s.unregister = unregister
	s.mu.Unlock()

	// Instances that were running before the plugin loaded.
	for _, inst := range h.Instances() {
		s.attach(inst)
	}
	return s, nil
}

// CheckReadiness reports whether any query has succeeded yet.
func (s *Subscription) CheckReadiness(ctx context.Context) error {
	return s.runner.CheckReadiness(ctx)
}

// Attached returns the number of instances with a recurring query.
func (s *Subscription) Attached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attachments)
}

func (s *Subscription) attach(inst host.Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if _, ok := s.attachments[inst.ID()]; ok {
		return
	}

	a := &attachment{instance: inst}
	a.stop = s.host.ScheduleRecurring(s.interval, func() { s.tick(a) })
	s.attachments[inst.ID()] = a
	s.metrics.InstancesAttached.Inc()

	s.logger.Debug("venue query scheduled", "instance", inst.ID(), "interval", s.interval)
}

// tick starts a query on a worker goroutine so the host's scheduler is never
// blocked by the network round trip. A tick that finds the previous query
// still running is skipped.
func (s *Subscription) tick(a *attachment) {
	if !a.running.CompareAndSwap(false, true) {
		s.metrics.QueriesSkipped.Inc()
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		a.running.Store(false)
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer a.running.Store(false)
		_ = s.runner.Run(s.ctx, a.instance.ID())
	}()
}

// Close stops every recurring query, removes the init hook, cancels queries
// in flight and waits for them to return. It is safe to call more than once.
func (s *Subscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	unregister := s.unregister
	attachments := s.attachments
	s.attachments = make(map[string]*attachment)
	s.mu.Unlock()

	if unregister != nil {
		unregister()
	}
	for _, a := range attachments {
		a.stop()
		s.metrics.InstancesAttached.Dec()
	}
	s.cancel()
	s.wg.Wait()

	s.logger.Debug("venue plugin closed", "instances", len(attachments))
	return nil
}
