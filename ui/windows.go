package ui

import (
	"errors"
	"fmt"
	"time"

	"termchat/log"
	"termchat/plugin"
	"termchat/ui/theme"
)

var (
	ErrNoSuchWindow  = errors.New("no such window")
	ErrCloseConsole  = errors.New("cannot close the console")
	ErrDuplicateTag  = errors.New("a window with this tag already exists")
	ErrDuplicateChat = errors.New("a chat window for this contact already exists")
)

// WindowTable is the ordered set of windows. Window numbers are positions in
// the table starting at 1; the console is always window 1. Closing a window
// renumbers every window after it.
type WindowTable struct {
	windows []*Window
	// selectedIdx is the index of the current window.
	selectedIdx int

	redraws int
	now     func() time.Time
}

var _ plugin.WindowHost = (*WindowTable)(nil)

// NewWindowTable creates a table holding only the console.
func NewWindowTable() *WindowTable {
	return &WindowTable{
		windows: []*Window{{kind: KindConsole}},
		now:     time.Now,
	}
}

// Len returns the number of windows.
func (t *WindowTable) Len() int {
	return len(t.windows)
}

// Windows returns the windows in number order.
func (t *WindowTable) Windows() []*Window {
	return t.windows
}

// Console returns window 1.
func (t *WindowTable) Console() *Window {
	return t.windows[0]
}

// Current returns the active window.
func (t *WindowTable) Current() *Window {
	return t.windows[t.selectedIdx]
}

// CurrentNumber returns the active window's number.
func (t *WindowTable) CurrentNumber() int {
	return t.selectedIdx + 1
}

// Get returns window num.
func (t *WindowTable) Get(num int) (*Window, bool) {
	if num < 1 || num > len(t.windows) {
		return nil, false
	}
	return t.windows[num-1], true
}

// FindWindow returns the plugin window for tag.
func (t *WindowTable) FindWindow(tag string) (plugin.Window, bool) {
	if w := t.findTag(tag); w != nil {
		return w, true
	}
	return nil, false
}

func (t *WindowTable) findTag(tag string) *Window {
	if tag == "" {
		return nil
	}
	for _, w := range t.windows {
		if w.kind == KindPlugin && w.tag == tag {
			return w
		}
	}
	return nil
}

// FindChat returns the chat window for contact.
func (t *WindowTable) FindChat(contact string) (*Window, bool) {
	for _, w := range t.windows {
		if w.kind == KindChat && w.contact == contact {
			return w, true
		}
	}
	return nil, false
}

// NewPluginWindow appends a plugin window for tag. Callers check for an
// existing window first; a duplicate tag returns the existing window.
func (t *WindowTable) NewPluginWindow(tag string) plugin.Window {
	if w := t.findTag(tag); w != nil {
		log.WarningLog.Printf("%v: %s", ErrDuplicateTag, tag)
		return w
	}
	w := &Window{kind: KindPlugin, tag: tag}
	t.windows = append(t.windows, w)
	return w
}

// NewChatWindow appends a chat window for contact.
func (t *WindowTable) NewChatWindow(contact string) (*Window, error) {
	if _, exists := t.FindChat(contact); exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateChat, contact)
	}
	w := &Window{kind: KindChat, contact: contact}
	t.windows = append(t.windows, w)
	return w, nil
}

// WindowNumber returns the current number of w.
func (t *WindowTable) WindowNumber(w plugin.Window) (int, bool) {
	target, ok := w.(*Window)
	if !ok {
		return 0, false
	}
	return t.number(target)
}

func (t *WindowTable) number(target *Window) (int, bool) {
	for i, w := range t.windows {
		if w == target {
			return i + 1, true
		}
	}
	return 0, false
}

// SwitchWindow makes window num current and clears its indicator.
func (t *WindowTable) SwitchWindow(num int) bool {
	w, ok := t.Get(num)
	if !ok {
		return false
	}
	t.selectedIdx = num - 1
	w.markRead()
	t.Redraw()
	return true
}

// Next switches to the following window, wrapping to the console.
func (t *WindowTable) Next() {
	t.SwitchWindow((t.selectedIdx+1)%len(t.windows) + 1)
}

// Prev switches to the preceding window, wrapping to the last.
func (t *WindowTable) Prev() {
	t.SwitchWindow((t.selectedIdx+len(t.windows)-1)%len(t.windows) + 1)
}

// IsCurrent reports whether w is the active window.
func (t *WindowTable) IsCurrent(w plugin.Window) bool {
	target, ok := w.(*Window)
	return ok && t.Current() == target
}

// PrintLine appends text to w. Lines printed to a background window count as
// unread.
func (t *WindowTable) PrintLine(w plugin.Window, attr theme.Attr, text string) {
	target, ok := w.(*Window)
	if !ok {
		log.ErrorLog.Printf("print to foreign window %q", w.Tag())
		return
	}
	t.print(target, attr, text)
}

func (t *WindowTable) print(w *Window, attr theme.Attr, text string) {
	w.append(Line{Attr: attr, Text: text, Time: t.now()})
	if t.Current() != w {
		w.unread++
	}
}

// ConsolePrint appends text to the console.
func (t *WindowTable) ConsolePrint(attr theme.Attr, text string) {
	t.print(t.Console(), attr, text)
	if t.Current() == t.Console() {
		t.Redraw()
	}
}

// MarkActive lights window num's indicator unless it is the active window.
func (t *WindowTable) MarkActive(num int) {
	w, ok := t.Get(num)
	if !ok || num == t.CurrentNumber() {
		return
	}
	w.active = true
}

// Redraw records that the active window must be repainted.
func (t *WindowTable) Redraw() {
	t.redraws++
}

// Redraws returns how many redraws were requested. The view compares it
// against the count it last painted.
func (t *WindowTable) Redraws() int {
	return t.redraws
}

// ActiveNumbers returns the numbers of windows whose indicator is lit.
func (t *WindowTable) ActiveNumbers() []int {
	var nums []int
	for i, w := range t.windows {
		if w.Active() {
			nums = append(nums, i+1)
		}
	}
	return nums
}

// Summary describes each window on one line, for the /wins listing.
func (t *WindowTable) Summary() []string {
	lines := make([]string, 0, len(t.windows))
	for i, w := range t.windows {
		line := fmt.Sprintf("%d: %s", i+1, w.Title())
		if w.kind != KindConsole {
			line += fmt.Sprintf(" (%s)", w.kind)
		}
		if w.unread > 0 {
			line += fmt.Sprintf(", %d unread", w.unread)
		}
		lines = append(lines, line)
	}
	return lines
}

// Close removes window num. Closing the active window switches to the
// console; closing one before it keeps the same window active under its new
// number.
func (t *WindowTable) Close(num int) (*Window, error) {
	w, ok := t.Get(num)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchWindow, num)
	}
	if w.kind == KindConsole {
		return nil, ErrCloseConsole
	}

	idx := num - 1
	switch {
	case idx == t.selectedIdx:
		t.selectedIdx = 0
	case idx < t.selectedIdx:
		t.selectedIdx--
	}
	t.windows = append(t.windows[:idx], t.windows[idx+1:]...)
	t.Redraw()
	return w, nil
}
