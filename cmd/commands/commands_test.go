package commands

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termchat/cmd"
	"termchat/plugin"
	"termchat/ui"
	"termchat/ui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type printedLine struct {
	attr theme.Attr
	text string
}

type testHost struct {
	windows *ui.WindowTable
	runtime *plugin.Runtime
	printed []printedLine
	plugins []string
	beep    bool
	beepErr error
}

func newTestHost() *testHost {
	windows := ui.NewWindowTable()
	return &testHost{
		windows: windows,
		runtime: plugin.NewRuntime(hostAdapter{windows}),
	}
}

// hostAdapter gives the window table the console half of plugin.Host.
type hostAdapter struct {
	*ui.WindowTable
}

func (hostAdapter) ConsoleShow(string)                   {}
func (hostAdapter) ConsoleAlert()                        {}
func (hostAdapter) Notify(string, string, time.Duration) {}
func (hostAdapter) SendLine(string)                      {}
func (hostAdapter) CurrentRecipient() (string, bool)     { return "", false }

func (h *testHost) Windows() *ui.WindowTable { return h.windows }
func (h *testHost) Runtime() *plugin.Runtime { return h.runtime }
func (h *testHost) Plugins() []string        { return h.plugins }
func (h *testHost) Beep() bool               { return h.beep }

func (h *testHost) Print(attr theme.Attr, text string) {
	h.printed = append(h.printed, printedLine{attr: attr, text: text})
}

func (h *testHost) SetBeep(on bool) error {
	if h.beepErr != nil {
		return h.beepErr
	}
	h.beep = on
	return nil
}

func (h *testHost) output() string {
	var lines []string
	for _, p := range h.printed {
		lines = append(lines, p.text)
	}
	return strings.Join(lines, "\n")
}

func run(t *testing.T, h *testHost, line string) (bool, error) {
	t.Helper()
	registry := cmd.NewCommandRegistry()
	RegisterBuiltins(registry)
	name, args, err := cmd.ParseLine(line)
	require.NoError(t, err)
	return registry.Execute(h, name, args)
}

func TestQuit(t *testing.T) {
	h := newTestHost()
	cont, err := run(t, h, "/quit")
	require.NoError(t, err)
	assert.False(t, cont)

	cont, err = run(t, h, "/exit")
	require.NoError(t, err)
	assert.False(t, cont)
}

func TestWinsListsWindows(t *testing.T) {
	h := newTestHost()
	h.windows.NewPluginWindow("weather")

	_, err := run(t, h, "/wins")
	require.NoError(t, err)
	assert.Contains(t, h.output(), "1: Console")
	assert.Contains(t, h.output(), "2: weather (plugin)")
}

func TestWinSwitches(t *testing.T) {
	h := newTestHost()
	h.windows.NewPluginWindow("weather")

	_, err := run(t, h, "/win 2")
	require.NoError(t, err)
	assert.Equal(t, 2, h.windows.CurrentNumber())

	_, err = run(t, h, "/win 7")
	require.NoError(t, err)
	assert.Equal(t, 2, h.windows.CurrentNumber())
	assert.Contains(t, h.output(), "Window 7 does not exist.")

	_, err = run(t, h, "/win")
	var usageErr *plugin.UsageError
	assert.ErrorAs(t, err, &usageErr)
}

func TestMsgOpensChatWindow(t *testing.T) {
	h := newTestHost()

	_, err := run(t, h, `/msg alice "hi there" again`)
	require.NoError(t, err)
	assert.Equal(t, 2, h.windows.CurrentNumber())
	w := h.windows.Current()
	assert.Equal(t, ui.KindChat, w.Kind())
	assert.Equal(t, "alice", w.Contact())
	line, ok := w.LastLine()
	require.True(t, ok)
	assert.Equal(t, "me: hi there again", line.Text)

	require.True(t, h.windows.SwitchWindow(1))
	_, err = run(t, h, "/msg alice")
	require.NoError(t, err)
	assert.Equal(t, 2, h.windows.Len())
	assert.Equal(t, 2, h.windows.CurrentNumber())
}

func TestCloseDropsPluginBinding(t *testing.T) {
	h := newTestHost()
	api := h.runtime.API("weather")
	require.NoError(t, api.WinCreate("forecast", nil))
	require.NoError(t, api.WinFocus("forecast"))

	_, err := run(t, h, "/close")
	require.NoError(t, err)
	assert.Equal(t, 1, h.windows.Len())
	assert.False(t, api.WinExists("forecast"))
	_, bound := h.runtime.Registry.WindowBinding("forecast")
	assert.False(t, bound)

	require.NoError(t, api.WinCreate("forecast", nil), "the plugin can reopen its window")
}

func TestCloseErrors(t *testing.T) {
	h := newTestHost()

	_, err := run(t, h, "/close")
	require.NoError(t, err)
	assert.Contains(t, h.output(), "Cannot close the console window.")

	_, err = run(t, h, "/close 5")
	require.NoError(t, err)
	assert.Contains(t, h.output(), "Window 5 does not exist.")

	_, err = run(t, h, "/close x")
	require.NoError(t, err)
	assert.Contains(t, h.output(), "Window x does not exist.")
}

func TestHelp(t *testing.T) {
	h := newTestHost()
	require.NoError(t, h.runtime.API("weather").RegisterCommand(
		"/weather", 0, 1, "/weather [city]", "Show the weather", "", plugin.CallbackFunc(func([]string) (bool, error) { return true, nil })))

	_, err := run(t, h, "/help")
	require.NoError(t, err)
	assert.Contains(t, h.output(), "/wins")
	assert.Contains(t, h.output(), "Show the weather")

	h.printed = nil
	_, err = run(t, h, "/help weather")
	require.NoError(t, err)
	assert.Contains(t, h.output(), "Usage: /weather [city]")

	h.printed = nil
	_, err = run(t, h, "/help nope")
	require.NoError(t, err)
	assert.Contains(t, h.output(), "No such command: nope")
}

func TestPlugins(t *testing.T) {
	h := newTestHost()
	_, err := run(t, h, "/plugins")
	require.NoError(t, err)
	assert.Contains(t, h.output(), "No plugins loaded.")

	h.plugins = []string{"weather"}
	api := h.runtime.API("weather")
	require.NoError(t, api.RegisterCommand("/weather", 0, 0, "", "", "", plugin.CallbackFunc(func([]string) (bool, error) { return true, nil })))
	_, err = api.RegisterTimed(plugin.CallbackFunc(func([]string) (bool, error) { return true, nil }), 60)
	require.NoError(t, err)

	h.printed = nil
	_, err = run(t, h, "/plugins")
	require.NoError(t, err)
	assert.Contains(t, h.output(), "weather: 1 commands, 1 timed, 0 windows")
}

func TestCopy(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	defer func() { writeClipboard = orig }()

	h := newTestHost()
	_, err := run(t, h, "/copy")
	require.NoError(t, err)
	assert.Contains(t, h.output(), "Nothing to copy.")

	h.windows.ConsolePrint(theme.Text, "copy me")
	_, err = run(t, h, "/copy")
	require.NoError(t, err)
	assert.Equal(t, "copy me", copied)
}

func TestCopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	defer func() { writeClipboard = orig }()

	h := newTestHost()
	h.windows.ConsolePrint(theme.Text, "copy me")
	_, err := run(t, h, "/copy")
	assert.Error(t, err)
}

func TestBeep(t *testing.T) {
	h := newTestHost()

	_, err := run(t, h, "/beep on")
	require.NoError(t, err)
	assert.True(t, h.beep)
	assert.Contains(t, h.output(), "Sound set to on.")

	_, err = run(t, h, "/beep maybe")
	require.NoError(t, err)
	assert.True(t, h.beep)
	assert.Contains(t, h.output(), "Usage: /beep on|off")

	h.beepErr = errors.New("disk full")
	_, err = run(t, h, "/beep off")
	assert.Error(t, err)
}

func TestRegisterCompletions(t *testing.T) {
	h := newTestHost()
	require.NoError(t, RegisterCompletions(h.runtime.Binder, "termchat"))

	line, ok := h.runtime.Binder.CompleteLine("/beep o")
	require.True(t, ok)
	assert.Equal(t, "/beep on", line)
}
