package ui

import (
	"time"

	"termchat/ui/theme"
)

// Kind is what a window shows.
type Kind int

const (
	KindConsole Kind = iota
	KindChat
	KindPlugin
)

func (k Kind) String() string {
	switch k {
	case KindConsole:
		return "console"
	case KindChat:
		return "chat"
	case KindPlugin:
		return "plugin"
	}
	return "unknown"
}

// maxScrollback is how many lines a window keeps.
const maxScrollback = 1000

// Line is one printed line of a window.
type Line struct {
	Attr theme.Attr
	Text string
	Time time.Time
}

// Window is one entry in the window table.
type Window struct {
	kind Kind
	// tag identifies plugin windows; contact identifies chat windows.
	tag     string
	contact string

	lines  []Line
	unread int
	// active is set when something asked for the user's attention.
	active bool
}

// Tag returns the plugin tag, or "" for console and chat windows.
func (w *Window) Tag() string {
	return w.tag
}

// Kind returns the window kind.
func (w *Window) Kind() Kind {
	return w.kind
}

// Contact returns the recipient of a chat window.
func (w *Window) Contact() string {
	return w.contact
}

// Title is what the title bar shows for the window.
func (w *Window) Title() string {
	switch w.kind {
	case KindChat:
		return w.contact
	case KindPlugin:
		return w.tag
	}
	return "Console"
}

// Lines returns the window's scrollback.
func (w *Window) Lines() []Line {
	return w.lines
}

// LastLine returns the most recent line.
func (w *Window) LastLine() (Line, bool) {
	if len(w.lines) == 0 {
		return Line{}, false
	}
	return w.lines[len(w.lines)-1], true
}

// Unread returns how many lines arrived while the window was in the
// background.
func (w *Window) Unread() int {
	return w.unread
}

// Active reports whether the window's status bar indicator is lit.
func (w *Window) Active() bool {
	return w.active || w.unread > 0
}

func (w *Window) append(line Line) {
	w.lines = append(w.lines, line)
	if over := len(w.lines) - maxScrollback; over > 0 {
		w.lines = append(w.lines[:0], w.lines[over:]...)
	}
}

func (w *Window) markRead() {
	w.unread = 0
	w.active = false
}
