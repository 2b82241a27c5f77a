package plugin

import (
	"termchat/log"
)

// Dispatcher runs plugin commands. The line parser resolves built-in
// commands first and reports unknown names itself.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over the registry's commands.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch invokes the command called name with argv.
//
// It returns ErrUnknownCommand when no such command exists and a
// *UsageError when len(argv) is outside the command's bounds; in both cases
// nothing is invoked. Otherwise the callback runs exactly once and its
// continue signal is returned unchanged. A failing callback is logged and
// reported as a *CallbackError with continue set to true.
func (d *Dispatcher) Dispatch(name string, argv []string) (bool, error) {
	spec, ok := d.registry.Command(name)
	if !ok {
		return true, ErrUnknownCommand
	}

	if !spec.AcceptsArgs(len(argv)) {
		log.DebugLog.Printf("command %s: %d args outside [%d, %d]", name, len(argv), spec.MinArgs, spec.MaxArgs)
		return true, &UsageError{Command: name, Usage: spec.Usage, Got: len(argv)}
	}

	cont, err := invoke(spec.Callback, argv)
	if err != nil {
		cbErr := &CallbackError{Kind: "command", Name: name, Owner: spec.Owner, Err: err}
		log.ErrorLog.Print(cbErr)
		return true, cbErr
	}
	return cont, nil
}
