package plugin

import (
	"errors"
	"fmt"
)

// Registration errors. They are returned by the Registry and by the
// per-plugin API, which also logs them on the plugin's behalf.
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidInterval  = errors.New("interval must be at least one second")
	ErrInvalidArity     = errors.New("invalid argument bounds")
	ErrNilCallback      = errors.New("callback cannot be nil")
	ErrDuplicateCommand = errors.New("command already registered")
	ErrDuplicateWindow  = errors.New("window handler already registered")
)

// Lookup errors.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownWindow  = errors.New("no window for tag")
	ErrUnknownTask    = errors.New("unknown timed task")
)

// ErrCallbackPanic wraps a panic recovered from plugin code.
var ErrCallbackPanic = errors.New("plugin callback panicked")

// UsageError is returned by Dispatch when the argument count is outside the
// command's bounds. The callback is not invoked.
type UsageError struct {
	Command string
	Usage   string
	Got     int
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %s", e.Usage)
}

// CallbackError reports a failure inside plugin code.
type CallbackError struct {
	// Kind is "command", "timed" or "window".
	Kind  string
	Name  string
	Owner string
	Err   error
}

func (e *CallbackError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("%s %s (plugin %s) failed: %v", e.Kind, e.Name, e.Owner, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Kind, e.Name, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}
