package plugin

import (
	"time"

	"termchat/ui/theme"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeWindow struct {
	tag string
}

func (w *fakeWindow) Tag() string { return w.tag }

type printed struct {
	attr theme.Attr
	text string
}

// fakeHost is an in-memory window table. Window 1 is the console and has no
// tag; plugin windows are numbered from 2 in creation order.
type fakeHost struct {
	windows  []*fakeWindow
	current  int
	redraws  int
	active   []int
	switches []int
	lines    map[string][]printed

	console       []string
	alerts        int
	notifications []string
	sent          []string
	recipient     string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		windows: []*fakeWindow{{tag: ""}},
		current: 1,
		lines:   make(map[string][]printed),
	}
}

func (h *fakeHost) FindWindow(tag string) (Window, bool) {
	for _, w := range h.windows {
		if w.tag == tag && tag != "" {
			return w, true
		}
	}
	return nil, false
}

func (h *fakeHost) NewPluginWindow(tag string) Window {
	w := &fakeWindow{tag: tag}
	h.windows = append(h.windows, w)
	return w
}

func (h *fakeHost) WindowNumber(w Window) (int, bool) {
	for i, candidate := range h.windows {
		if candidate == w {
			return i + 1, true
		}
	}
	return 0, false
}

func (h *fakeHost) SwitchWindow(num int) bool {
	if num < 1 || num > len(h.windows) {
		return false
	}
	h.current = num
	h.switches = append(h.switches, num)
	return true
}

func (h *fakeHost) IsCurrent(w Window) bool {
	num, ok := h.WindowNumber(w)
	return ok && num == h.current
}

func (h *fakeHost) PrintLine(w Window, attr theme.Attr, text string) {
	h.lines[w.Tag()] = append(h.lines[w.Tag()], printed{attr: attr, text: text})
}

func (h *fakeHost) MarkActive(num int) { h.active = append(h.active, num) }

func (h *fakeHost) Redraw() { h.redraws++ }

// closeWindow drops a window, shifting later windows down by one.
func (h *fakeHost) closeWindow(tag string) {
	for i, w := range h.windows {
		if w.tag == tag {
			h.windows = append(h.windows[:i], h.windows[i+1:]...)
			h.current = 1
			return
		}
	}
}

func (h *fakeHost) ConsoleShow(message string) { h.console = append(h.console, message) }

func (h *fakeHost) ConsoleAlert() { h.alerts++ }

func (h *fakeHost) Notify(message, category string, timeout time.Duration) {
	h.notifications = append(h.notifications, category+": "+message)
}

func (h *fakeHost) SendLine(line string) { h.sent = append(h.sent, line) }

func (h *fakeHost) CurrentRecipient() (string, bool) {
	return h.recipient, h.recipient != ""
}

// recorder is a Callback that records its invocations.
type recorder struct {
	calls [][]string
	cont  bool
	err   error
}

func newRecorder() *recorder { return &recorder{cont: true} }

func (r *recorder) Invoke(args []string) (bool, error) {
	r.calls = append(r.calls, append([]string(nil), args...))
	return r.cont, r.err
}
