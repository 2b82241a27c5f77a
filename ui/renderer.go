package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"termchat/ui/theme"
)

const timeFormat = "15:04"

// Renderer turns windows into styled text.
type Renderer struct {
	theme *theme.Theme
	width int
}

// NewRenderer creates a renderer using th.
func NewRenderer(th *theme.Theme) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{theme: th, width: 80}
}

// SetTheme swaps the theme, e.g. after a config reload.
func (r *Renderer) SetTheme(th *theme.Theme) {
	r.theme = th
}

// SetWidth sets the terminal width in cells.
func (r *Renderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	r.width = width
}

// Lines renders the window's scrollback, wrapping long lines to the width.
// Continuation lines are indented past the timestamp.
func (r *Renderer) Lines(w *Window) string {
	prefixWidth := len(timeFormat) + 3
	indent := strings.Repeat(" ", prefixWidth)

	var b strings.Builder
	for i, line := range w.Lines() {
		if i > 0 {
			b.WriteString("\n")
		}
		stamp := line.Time.Format(timeFormat) + " - "
		wrapped := wordwrap.String(line.Text, r.width-prefixWidth)
		wrapped = strings.ReplaceAll(wrapped, "\n", "\n"+indent)
		b.WriteString(stamp)
		b.WriteString(r.theme.Render(line.Attr, wrapped))
	}
	return b.String()
}

// TitleBar renders the bar above the active window.
func (r *Renderer) TitleBar(w *Window, num int) string {
	title := fmt.Sprintf(" %d: %s", num, w.Title())
	if w.Kind() != KindConsole {
		title += fmt.Sprintf(" (%s)", w.Kind())
	}
	title = runewidth.Truncate(title, r.width, "…")
	return r.theme.Style(theme.TitleBar).Width(r.width).Render(title)
}

type segment struct {
	text string
	attr theme.Attr
}

// StatusBar renders the clock, the window list and notice. The active window
// is bracketed with "-"; windows with activity use the active attribute.
func (r *Renderer) StatusBar(t *WindowTable, clock string, notice string) string {
	segments := []segment{{text: " [" + clock + "] ", attr: theme.Status}}
	for i, w := range t.Windows() {
		num := i + 1
		switch {
		case num == t.CurrentNumber():
			segments = append(segments, segment{text: fmt.Sprintf("[-%d-]", num), attr: theme.Status})
		case w.Active():
			segments = append(segments, segment{text: fmt.Sprintf("[%d]", num), attr: theme.Active})
		default:
			segments = append(segments, segment{text: fmt.Sprintf("[%d]", num), attr: theme.Status})
		}
	}
	if notice != "" {
		segments = append(segments, segment{text: "  " + notice, attr: theme.Status})
	}

	bar := r.theme.Style(theme.Status)
	var b strings.Builder
	remaining := r.width
	for _, seg := range segments {
		if remaining <= 0 {
			break
		}
		text := seg.text
		if runewidth.StringWidth(text) > remaining {
			text = runewidth.Truncate(text, remaining, "…")
		}
		remaining -= runewidth.StringWidth(text)

		style := bar
		if seg.attr != theme.Status {
			style = bar.Foreground(r.theme.Style(seg.attr).GetForeground()).Bold(true)
		}
		b.WriteString(style.Render(text))
	}
	if remaining > 0 {
		b.WriteString(bar.Render(strings.Repeat(" ", remaining)))
	}
	return lipgloss.NewStyle().MaxWidth(r.width).Render(b.String())
}
