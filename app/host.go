package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"termchat/config"
	"termchat/log"
	"termchat/plugin"
	"termchat/ui"
	"termchat/ui/theme"
)

// pluginHost is what the plugin runtime sees of the client: the window table
// for window operations and the home model for everything else.
type pluginHost struct {
	*ui.WindowTable
	m *home
}

var _ plugin.Host = pluginHost{}

func (h pluginHost) ConsoleShow(message string) {
	h.m.windows.ConsolePrint(theme.Text, message)
}

func (h pluginHost) ConsoleAlert() {
	h.m.windows.MarkActive(1)
	if h.m.cfg.Beep {
		h.m.bell()
	}
}

func (h pluginHost) Notify(message, category string, timeout time.Duration) {
	h.m.notify(fmt.Sprintf("%s: %s", category, message), timeout)
}

func (h pluginHost) SendLine(line string) {
	h.m.pending = append(h.m.pending, line)
}

func (h pluginHost) CurrentRecipient() (string, bool) {
	w := h.m.windows.Current()
	if w.Kind() != ui.KindChat {
		return "", false
	}
	return w.Contact(), true
}

// The methods below make home an interfaces.Host for built-in commands.

func (m *home) Windows() *ui.WindowTable { return m.windows }

func (m *home) Runtime() *plugin.Runtime { return m.runtime }

func (m *home) Print(attr theme.Attr, text string) {
	m.windows.ConsolePrint(attr, text)
}

func (m *home) Plugins() []string {
	names := make([]string, 0, len(m.plugins))
	for _, p := range m.plugins {
		names = append(names, p.Name())
	}
	return names
}

func (m *home) Beep() bool { return m.cfg.Beep }

// SetBeep changes the bell preference and persists it.
func (m *home) SetBeep(on bool) error {
	m.cfg.Beep = on
	if m.configPath == "" {
		return nil
	}
	if err := config.SaveConfigTo(m.configPath, m.cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// notify shows message in the status bar until timeout passes or another
// notice replaces it.
func (m *home) notify(message string, timeout time.Duration) {
	m.noticeID++
	m.notice = message
	id := m.noticeID
	log.InfoLog.Printf("notice: %s", message)
	m.queue(tea.Tick(timeout, func(time.Time) tea.Msg {
		return hideNoticeMsg{id: id}
	}))
}
