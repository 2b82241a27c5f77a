package plugin

import (
	"fmt"
	"time"

	"termchat/log"
	"termchat/ui/theme"
)

// Window is a handle to a window in the host's window table.
type Window interface {
	Tag() string
}

// WindowHost is the slice of the host window manager the mediator needs.
type WindowHost interface {
	// FindWindow looks a window up by tag.
	FindWindow(tag string) (Window, bool)
	// NewPluginWindow creates a plugin-owned window for tag.
	NewPluginWindow(tag string) Window
	// WindowNumber returns the window's current position.
	WindowNumber(w Window) (int, bool)
	// SwitchWindow makes window num the active window.
	SwitchWindow(num int) bool
	// IsCurrent reports whether w is the active window.
	IsCurrent(w Window) bool
	// PrintLine appends a line to w.
	PrintLine(w Window, attr theme.Attr, text string)
	// MarkActive lights the status bar indicator for window num.
	MarkActive(num int)
	// Redraw forces the active window to be redrawn.
	Redraw()
}

// StyleHint is the closed set of styles a plugin can ask for. The mediator
// decides what each one looks like.
type StyleHint int

const (
	StylePlain StyleHint = iota
	StyleGood
	StyleBad
	StyleCautionary
	StyleIncomingHighlight
)

func (h StyleHint) String() string {
	switch h {
	case StylePlain:
		return "plain"
	case StyleGood:
		return "good"
	case StyleBad:
		return "bad"
	case StyleCautionary:
		return "cautionary"
	case StyleIncomingHighlight:
		return "incoming-highlight"
	}
	return fmt.Sprintf("StyleHint(%d)", int(h))
}

// attr maps a hint to a theme attribute. Unknown hints print plain.
func (h StyleHint) attr() theme.Attr {
	switch h {
	case StyleGood:
		return theme.Online
	case StyleBad:
		return theme.Offline
	case StyleCautionary:
		return theme.Away
	case StyleIncomingHighlight:
		return theme.Incoming
	}
	return theme.Text
}

// Mediator manages plugin windows: one window per tag, created on demand.
type Mediator struct {
	host     WindowHost
	registry *Registry

	// createUnknown makes Focus and PostLine create a window for a tag that
	// has none instead of ignoring the call.
	createUnknown bool

	// unknownEvery limits unknown-tag warnings per tag; timed tasks often
	// write to a window the user has closed.
	unknownEvery map[string]*log.Every
}

const unknownWarnInterval = 30 * time.Second

// NewMediator creates a mediator over host.
func NewMediator(host WindowHost, registry *Registry) *Mediator {
	return &Mediator{host: host, registry: registry, unknownEvery: make(map[string]*log.Every)}
}

// SetCreateUnknown sets the unknown-tag policy.
func (m *Mediator) SetCreateUnknown(create bool) {
	m.createUnknown = create
}

// Exists reports whether a window exists for tag.
func (m *Mediator) Exists(tag string) bool {
	_, ok := m.host.FindWindow(tag)
	return ok
}

// EnsureWindow returns the window for tag, creating a plugin window and
// lighting its status bar indicator if there is none.
func (m *Mediator) EnsureWindow(tag string) (Window, error) {
	if tag == "" {
		return nil, fmt.Errorf("ensure window: %w", ErrEmptyName)
	}
	if w, ok := m.host.FindWindow(tag); ok {
		return w, nil
	}

	w := m.host.NewPluginWindow(tag)
	delete(m.unknownEvery, tag)
	if num, ok := m.host.WindowNumber(w); ok {
		m.host.MarkActive(num)
	}
	log.DebugLog.Printf("created plugin window %s", tag)
	return w, nil
}

// Bind registers a window handler for tag and makes sure its window exists.
func (m *Mediator) Bind(owner, tag string, cb Callback) (Window, error) {
	if err := m.registry.RegisterWindowHandler(owner, tag, cb); err != nil {
		return nil, err
	}
	return m.EnsureWindow(tag)
}

// resolve finds the window for tag, applying the unknown-tag policy.
func (m *Mediator) resolve(tag, op string) (Window, error) {
	if w, ok := m.host.FindWindow(tag); ok {
		return w, nil
	}
	if m.createUnknown {
		return m.EnsureWindow(tag)
	}
	if m.shouldWarnUnknown(tag) {
		log.WarningLog.Printf("%s: no window for tag %q", op, tag)
	}
	return nil, fmt.Errorf("%s %s: %w", op, tag, ErrUnknownWindow)
}

func (m *Mediator) shouldWarnUnknown(tag string) bool {
	every, ok := m.unknownEvery[tag]
	if !ok {
		every = log.NewEvery(unknownWarnInterval)
		m.unknownEvery[tag] = every
	}
	return every.ShouldLog()
}

// Focus makes the window for tag the active window. The window's position is
// looked up on every call since the host may renumber windows.
func (m *Mediator) Focus(tag string) error {
	w, err := m.resolve(tag, "focus")
	if err != nil {
		return err
	}
	num, ok := m.host.WindowNumber(w)
	if !ok {
		return fmt.Errorf("focus %s: %w", tag, ErrUnknownWindow)
	}
	m.host.SwitchWindow(num)
	return nil
}

// PostLine appends text to the window for tag. If that window is active it is
// redrawn immediately; otherwise redrawing is left to the host.
func (m *Mediator) PostLine(tag, text string, hint StyleHint) error {
	w, err := m.resolve(tag, "post line")
	if err != nil {
		return err
	}
	m.host.PrintLine(w, hint.attr(), text)
	if m.host.IsCurrent(w) {
		m.host.Redraw()
	}
	return nil
}

// Deliver hands a line typed into the window for tag to the window's
// notification callback. It reports whether a callback was invoked.
func (m *Mediator) Deliver(tag, line string) (bool, error) {
	b, ok := m.registry.WindowBinding(tag)
	if !ok || b.Callback == nil {
		return false, nil
	}
	if _, err := invoke(b.Callback, []string{tag, line}); err != nil {
		cbErr := &CallbackError{Kind: "window", Name: tag, Owner: b.Owner, Err: err}
		log.ErrorLog.Print(cbErr)
		return true, cbErr
	}
	return true, nil
}
