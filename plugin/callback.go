package plugin

import "fmt"

// Callback is a bound handle into plugin code. Each plugin runtime supplies an
// adapter that forwards Invoke to the plugin using its own calling convention.
//
// The boolean result is the "continue running" signal: command callbacks
// return false to ask the host to shut down. Timed and window callbacks have
// their result ignored.
type Callback interface {
	Invoke(args []string) (bool, error)
}

// CallbackFunc adapts a Go function to Callback.
type CallbackFunc func(args []string) (bool, error)

// Invoke calls f(args).
func (f CallbackFunc) Invoke(args []string) (bool, error) {
	return f(args)
}

// invoke calls cb and converts a panic into an error so plugin failures never
// unwind through the host loop.
func invoke(cb Callback, args []string) (cont bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			cont = true
			err = fmt.Errorf("%w: %v", ErrCallbackPanic, r)
		}
	}()
	return cb.Invoke(args)
}
