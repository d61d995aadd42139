package host

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type namedInstance string

func (n namedInstance) ID() string { return string(n) }

// NewInstance returns an Instance identified by id.
func NewInstance(id string) Instance { return namedInstance(id) }

type initHook struct {
	id int
	fn func(Instance)
}

// Local is an in-process Host. Recurring callbacks are driven by a
// clockwork.Clock so tests can advance time by hand.
type Local struct {
	clock  clockwork.Clock
	logger *slog.Logger

	mu        sync.Mutex
	instances []Instance
	hooks     []initHook
	nextHook  int
}

// NewLocal creates a host with no instances.
func NewLocal(clock clockwork.Clock, logger *slog.Logger) *Local {
	return &Local{clock: clock, logger: logger}
}

// AddInstance starts tracking inst and runs every registered init hook for it,
// in registration order.
func (h *Local) AddInstance(inst Instance) {
	h.mu.Lock()
	h.instances = append(h.instances, inst)
	hooks := make([]initHook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	h.logger.Debug("host instance added", "instance", inst.ID(), "hooks", len(hooks))
	for _, hook := range hooks {
		hook.fn(inst)
	}
}

func (h *Local) RegisterInitHook(hook func(Instance)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextHook
	h.nextHook++
	h.hooks = append(h.hooks, initHook{id: id, fn: hook})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, hk := range h.hooks {
			if hk.id == id {
				h.hooks = append(h.hooks[:i], h.hooks[i+1:]...)
				return
			}
		}
	}
}

func (h *Local) Instances() []Instance {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Instance, len(h.instances))
	copy(out, h.instances)
	return out
}

// ScheduleRecurring runs cb on its own goroutine once per tick. A slow
// callback delays the following ticks rather than overlapping with them.
func (h *Local) ScheduleRecurring(interval time.Duration, cb func()) func() {
	ticker := h.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.Chan():
				cb()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
