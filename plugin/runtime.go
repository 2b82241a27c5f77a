package plugin

import (
	"time"
)

// ConsoleHost is the slice of the host the plugin API needs besides windows.
type ConsoleHost interface {
	// ConsoleShow prints a line in the console window.
	ConsoleShow(message string)
	// ConsoleAlert lights the console's status bar indicator.
	ConsoleAlert()
	// Notify shows a transient notification.
	Notify(message, category string, timeout time.Duration)
	// SendLine feeds line through the host's input processing as if typed.
	SendLine(line string)
	// CurrentRecipient returns the contact of the active chat window.
	CurrentRecipient() (string, bool)
}

// Host is everything the runtime consumes from the client.
type Host interface {
	WindowHost
	ConsoleHost
}

// Runtime bundles the registry and the components built on it. The host
// creates one at startup and owns it for the life of the process.
type Runtime struct {
	Registry   *Registry
	Dispatcher *Dispatcher
	Scheduler  *Scheduler
	Mediator   *Mediator
	Binder     *Binder

	console ConsoleHost
}

// Option configures a Runtime.
type Option func(*runtimeOptions)

type runtimeOptions struct {
	clock         Clock
	createUnknown bool
	reserved      func(string) bool
}

// WithClock sets the clock used for timed tasks.
func WithClock(clock Clock) Option {
	return func(o *runtimeOptions) { o.clock = clock }
}

// WithCreateUnknownWindows makes writes to unknown tags create a window.
func WithCreateUnknownWindows(create bool) Option {
	return func(o *runtimeOptions) { o.createUnknown = create }
}

// WithReservedCommands rejects plugin commands for which reserved returns
// true, typically the host's built-ins.
func WithReservedCommands(reserved func(name string) bool) Option {
	return func(o *runtimeOptions) { o.reserved = reserved }
}

// NewRuntime wires a registry, dispatcher, scheduler, mediator and binder
// around host.
func NewRuntime(host Host, opts ...Option) *Runtime {
	var o runtimeOptions
	for _, opt := range opts {
		opt(&o)
	}

	registry := NewRegistry(o.clock)
	registry.SetReserved(o.reserved)
	mediator := NewMediator(host, registry)
	mediator.SetCreateUnknown(o.createUnknown)

	return &Runtime{
		Registry:   registry,
		Dispatcher: NewDispatcher(registry),
		Scheduler:  NewScheduler(registry),
		Mediator:   mediator,
		Binder:     NewBinder(registry),
		console:    host,
	}
}

// API returns the registration surface for the plugin called owner.
func (rt *Runtime) API(owner string) *API {
	return &API{owner: owner, rt: rt}
}

// Unload removes every registration owned by owner. Windows stay open in the
// host but no longer reach plugin code.
func (rt *Runtime) Unload(owner string) UnloadStats {
	return rt.Registry.Unload(owner)
}
