package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"termchat/autocomplete"
	"termchat/cmd"
	"termchat/cmd/commands"
	"termchat/config"
	"termchat/keys"
	"termchat/log"
	"termchat/plugin"
	"termchat/plugin/lua"
	"termchat/ui"
	"termchat/ui/fuzzy"
	"termchat/ui/theme"
)

const (
	// maxPendingLines bounds how many plugin-sent lines are processed after
	// one event, so a command that sends itself cannot spin forever.
	maxPendingLines = 64
	historySize     = 100
	clockFormat     = "15:04"
	inputPrompt     = "> "
)

// Options configures Run.
type Options struct {
	Config *config.Config
	// ConfigPath is where /beep persists preferences and what the watcher
	// reloads. Empty disables both.
	ConfigPath string
	// Scripts are Lua plugins loaded after those listed in Config.Plugins.
	Scripts []string
	// Clock drives timed plugin tasks. Nil means the system clock.
	Clock plugin.Clock
}

// Run is the main entrypoint into the application.
func Run(ctx context.Context, opts Options) error {
	m := newHome(ctx, opts)
	defer m.close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse scroll
		tea.WithContext(ctx),
	)

	if opts.ConfigPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := config.Watch(watchCtx, opts.ConfigPath, config.DefaultReloadDelay, func(cfg *config.Config) {
				p.Send(configReloadedMsg{cfg: cfg})
			})
			if err != nil {
				log.WarningLog.Printf("config watcher stopped: %v", err)
			}
		}()
	}

	_, err := p.Run()
	return err
}

type tickMsg time.Time

type hideNoticeMsg struct {
	id int
}

type configReloadedMsg struct {
	cfg *config.Config
}

type home struct {
	ctx context.Context

	// -- Configuration --

	cfg        *config.Config
	configPath string

	// -- Plugin runtime --

	runtime  *plugin.Runtime
	builtins *cmd.CommandRegistry
	plugins  []*lua.Plugin

	// pending holds lines plugins sent with SendLine. They are processed
	// after the current event so plugin code never re-enters itself.
	pending []string
	// queued holds commands produced while handling the current event.
	queued []tea.Cmd

	// -- State --

	windows  *ui.WindowTable
	quitting bool
	notice   string
	noticeID int

	history    []string
	historyIdx int

	// completionBase is the input as typed before the first tab press.
	completionBase string
	commandNames   *autocomplete.Autocomplete

	// painted and shown record what the viewport holds.
	painted int
	shown   *ui.Window

	// -- UI Components --

	renderer *ui.Renderer
	viewport viewport.Model
	input    textinput.Model

	now  func() time.Time
	bell func()
}

func newHome(ctx context.Context, opts Options) *home {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	input := textinput.New()
	input.Prompt = inputPrompt
	input.Focus()

	m := &home{
		ctx:          ctx,
		cfg:          cfg,
		configPath:   opts.ConfigPath,
		builtins:     cmd.NewCommandRegistry(),
		windows:      ui.NewWindowTable(),
		commandNames: autocomplete.New(),
		painted:      -1,
		renderer:     ui.NewRenderer(nil),
		viewport:     viewport.New(80, 20),
		input:        input,
		now:          time.Now,
		bell:         func() { fmt.Fprint(os.Stderr, "\a") },
	}
	m.runtime = plugin.NewRuntime(pluginHost{WindowTable: m.windows, m: m},
		plugin.WithClock(opts.Clock),
		plugin.WithCreateUnknownWindows(cfg.CreateUnknownWindows()),
		plugin.WithReservedCommands(func(name string) bool {
			_, ok := m.builtins.Resolve(name)
			return ok
		}))
	m.applyTheme()

	commands.RegisterBuiltins(m.builtins)
	if err := commands.RegisterCompletions(m.runtime.Binder, "termchat"); err != nil {
		log.ErrorLog.Printf("failed to register completions: %v", err)
	}

	m.Print(theme.Text, "Welcome to termchat. Type /help for a list of commands.")
	for _, path := range scriptPaths(cfg.Plugins, opts.Scripts) {
		m.loadPlugin(path)
	}
	m.drainPending()
	return m
}

// scriptPaths joins the configured and command line scripts, dropping
// repeats.
func scriptPaths(lists ...[]string) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, list := range lists {
		for _, path := range list {
			if path == "" || seen[path] {
				continue
			}
			seen[path] = true
			paths = append(paths, path)
		}
	}
	return paths
}

func (m *home) loadPlugin(path string) {
	name := lua.NameFromPath(path)
	for _, p := range m.plugins {
		if p.Name() == name {
			m.Print(theme.Error, fmt.Sprintf("Failed to load plugin %s: a plugin named %s is already loaded.", path, name))
			return
		}
	}

	p, err := lua.Load(m.runtime, path)
	if err != nil {
		log.ErrorLog.Printf("failed to load plugin %s: %v", path, err)
		m.Print(theme.Error, fmt.Sprintf("Failed to load plugin %s: %v", path, err))
		return
	}
	m.plugins = append(m.plugins, p)
	m.Print(theme.Online, fmt.Sprintf("Loaded plugin %s.", p.Name()))
}

// close releases every plugin interpreter.
func (m *home) close() {
	for _, p := range m.plugins {
		m.runtime.Unload(p.Name())
		p.Close()
	}
	m.plugins = nil
}

func (m *home) applyTheme() {
	th, err := theme.New(m.cfg.Theme)
	if err != nil {
		log.WarningLog.Printf("theme: %v", err)
	}
	m.renderer.SetTheme(th)
	m.painted = -1
}

func (m *home) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.applyTheme()
	m.runtime.Mediator.SetCreateUnknown(cfg.CreateUnknownWindows())
	m.Print(theme.Text, "Configuration reloaded.")
}

// updateHandleWindowSizeEvent sets the sizes of the components.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	// Title bar, status bar and input line take one row each.
	height := msg.Height - 3
	if height < 1 {
		height = 1
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = height
	m.input.Width = msg.Width - len(inputPrompt) - 1
	m.renderer.SetWidth(msg.Width)
	m.painted = -1
}

func (m *home) Init() tea.Cmd {
	// Notices raised while plugins loaded are queued already.
	cmds := append([]tea.Cmd{textinput.Blink, tickCmd(m.cfg.TickInterval())}, m.takeQueued()...)
	return tea.Batch(cmds...)
}

// tickCmd schedules the next scheduler pass.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		m.runtime.Scheduler.Tick()
		cmds = append(cmds, tickCmd(m.cfg.TickInterval()))
	case hideNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
	case configReloadedMsg:
		m.applyConfig(msg.cfg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.viewport.LineUp(3)
			case tea.MouseButtonWheelDown:
				m.viewport.LineDown(3)
			}
		}
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg))
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
	default:
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		cmds = append(cmds, inputCmd)
	}

	m.drainPending()
	cmds = append(cmds, m.takeQueued()...)
	m.refresh()

	if m.quitting {
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		before := m.input.Value()
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.resetCompletion()
		}
		return inputCmd
	}

	if num, ok := keys.WindowNumber(name); ok {
		m.windows.SwitchWindow(num)
		return nil
	}

	switch name {
	case keys.KeyQuit:
		m.quitting = true
	case keys.KeySubmit:
		line := m.input.Value()
		m.input.Reset()
		m.resetCompletion()
		m.remember(line)
		m.processLine(line)
	case keys.KeyComplete:
		m.complete()
	case keys.KeyPrevWindow:
		m.windows.Prev()
	case keys.KeyNextWindow:
		m.windows.Next()
	case keys.KeyScrollUp:
		m.viewport.ViewUp()
	case keys.KeyScrollDown:
		m.viewport.ViewDown()
	case keys.KeyClearInput:
		m.input.Reset()
		m.resetCompletion()
	case keys.KeyHelp:
		for _, line := range keys.HelpLines() {
			m.Print(theme.Text, line)
		}
		m.windows.SwitchWindow(1)
	case keys.KeyHistoryUp:
		m.recall(-1)
	case keys.KeyHistoryDown:
		m.recall(1)
	}
	return nil
}

// queue adds a command to run once the current event is handled.
func (m *home) queue(c tea.Cmd) {
	m.queued = append(m.queued, c)
}

func (m *home) takeQueued() []tea.Cmd {
	queued := m.queued
	m.queued = nil
	return queued
}

// drainPending processes lines plugins sent during the last event.
func (m *home) drainPending() {
	for n := 0; len(m.pending) > 0 && !m.quitting; n++ {
		if n == maxPendingLines {
			log.WarningLog.Printf("dropping %d lines sent by plugins", len(m.pending))
			m.pending = nil
			return
		}
		line := m.pending[0]
		m.pending = m.pending[1:]
		m.processLine(line)
	}
}

// processLine runs a command line or hands text to the active window.
// Built-in commands take precedence over plugin commands of the same name.
func (m *home) processLine(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if !cmd.IsCommand(line) {
		m.processText(line)
		return
	}

	name, args, err := cmd.ParseLine(line)
	if err != nil {
		m.Print(theme.Error, fmt.Sprintf("Could not parse command: %v", err))
		return
	}

	cont, err := m.builtins.Execute(m, name, args)
	if errors.Is(err, plugin.ErrUnknownCommand) {
		cont, err = m.runtime.Dispatcher.Dispatch(name, args)
	}
	if err != nil {
		m.reportCommandError(name, err)
	}
	if !cont {
		log.InfoLog.Printf("%s requested shutdown", name)
		m.quitting = true
	}
}

func (m *home) reportCommandError(name string, err error) {
	var usageErr *plugin.UsageError
	switch {
	case errors.Is(err, plugin.ErrUnknownCommand):
		m.Print(theme.Error, fmt.Sprintf("Unknown command: %s", name))
		if suggestions := fuzzy.Suggest(name, m.allCommandNames(), 1); len(suggestions) > 0 {
			m.Print(theme.Text, fmt.Sprintf("Did you mean %s?", suggestions[0]))
		}
	case errors.As(err, &usageErr):
		usage := usageErr.Usage
		if usage == "" {
			usage = name
		}
		m.Print(theme.Error, "Usage: "+usage)
	default:
		log.ErrorLog.Printf("command %s: %v", name, err)
		m.Print(theme.Error, err.Error())
	}
}

// processText handles a line that is not a command.
func (m *home) processText(line string) {
	w := m.windows.Current()
	switch w.Kind() {
	case ui.KindPlugin:
		delivered, err := m.runtime.Mediator.Deliver(w.Tag(), line)
		switch {
		case err != nil:
			m.Print(theme.Error, err.Error())
		case !delivered:
			m.windows.PrintLine(w, theme.Error, "Nothing handles input in this window.")
			m.windows.Redraw()
		}
	case ui.KindChat:
		m.windows.PrintLine(w, theme.Text, "me: "+line)
		m.windows.Redraw()
	default:
		m.Print(theme.Error, "Type /help for a list of commands.")
	}
}

// allCommandNames lists built-in names, aliases and plugin commands.
func (m *home) allCommandNames() []string {
	names := m.builtins.Names()
	for _, spec := range m.runtime.Registry.Commands() {
		if _, builtin := m.builtins.Resolve(spec.Name); !builtin {
			names = append(names, spec.Name)
		}
	}
	return names
}

// complete handles the tab key. A bare "/name" completes command names;
// anything else is offered to the autocomplete sets plugins registered.
// Repeated presses cycle through the matches for the text as first typed.
func (m *home) complete() {
	if m.completionBase == "" {
		m.completionBase = m.input.Value()
		m.commandNames.Replace(m.allCommandNames())
	}
	base := m.completionBase
	if base == "" {
		return
	}

	var completed string
	var ok bool
	if cmd.IsCommand(base) && !strings.Contains(base, " ") {
		completed, ok = m.commandNames.Complete(base)
	} else {
		completed, ok = m.runtime.Binder.CompleteLine(base)
	}
	if !ok {
		return
	}
	m.input.SetValue(completed)
	m.input.CursorEnd()
}

func (m *home) resetCompletion() {
	m.completionBase = ""
	m.commandNames.Reset()
	m.runtime.Binder.ResetAll()
}

func (m *home) remember(line string) {
	if strings.TrimSpace(line) != "" {
		m.history = append(m.history, line)
		if len(m.history) > historySize {
			m.history = m.history[len(m.history)-historySize:]
		}
	}
	m.historyIdx = len(m.history)
}

// recall moves through the input history by delta.
func (m *home) recall(delta int) {
	idx := m.historyIdx + delta
	if idx < 0 || idx > len(m.history) {
		return
	}
	m.historyIdx = idx
	if idx == len(m.history) {
		m.input.Reset()
	} else {
		m.input.SetValue(m.history[idx])
		m.input.CursorEnd()
	}
	m.resetCompletion()
}

// refresh repaints the viewport when the active window changed or asked for
// a redraw.
func (m *home) refresh() {
	current := m.windows.Current()
	if m.painted == m.windows.Redraws() && current == m.shown {
		return
	}
	follow := current != m.shown || m.viewport.AtBottom()
	m.viewport.SetContent(m.renderer.Lines(current))
	if follow {
		m.viewport.GotoBottom()
	}
	m.painted = m.windows.Redraws()
	m.shown = current
}

func (m *home) View() string {
	current := m.windows.Current()
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderer.TitleBar(current, m.windows.CurrentNumber()),
		m.viewport.View(),
		m.renderer.StatusBar(m.windows, m.now().Format(clockFormat), m.notice),
		m.input.View(),
	)
}
