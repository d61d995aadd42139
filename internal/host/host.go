// Package host defines the narrow surface a navigation host exposes to
// plugins, and a small in-process implementation of it.
package host

import "time"

// Instance is one running application instance of the host.
type Instance interface {
	ID() string
}

// Registry lets a plugin find the instances it should attach to.
type Registry interface {
	// RegisterInitHook arranges for hook to run for every instance started
	// after registration. The returned func removes the hook.
	RegisterInitHook(hook func(Instance)) (unregister func())

	// Instances lists the instances already running.
	Instances() []Instance
}

// Scheduler runs periodic callbacks on behalf of a plugin.
type Scheduler interface {
	// ScheduleRecurring calls cb roughly every interval until cancel is called.
	// Callbacks from one schedule never overlap.
	ScheduleRecurring(interval time.Duration, cb func()) (cancel func())
}

// Host is everything a plugin consumes. Logging is provided separately as a
// *slog.Logger.
type Host interface {
	Registry
	Scheduler
}
