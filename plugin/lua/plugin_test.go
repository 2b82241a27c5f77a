package lua

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termchat/plugin"
	"termchat/ui/theme"
)

type stubWindow string

func (w stubWindow) Tag() string { return string(w) }

type stubHost struct {
	windows   []stubWindow
	current   int
	lines     map[string][]string
	attrs     map[string][]theme.Attr
	console   []string
	notified  []string
	sent      []string
	recipient string
}

func newStubHost() *stubHost {
	return &stubHost{
		lines: make(map[string][]string),
		attrs: make(map[string][]theme.Attr),
	}
}

func (h *stubHost) FindWindow(tag string) (plugin.Window, bool) {
	for _, w := range h.windows {
		if string(w) == tag {
			return w, true
		}
	}
	return nil, false
}

func (h *stubHost) NewPluginWindow(tag string) plugin.Window {
	h.windows = append(h.windows, stubWindow(tag))
	return stubWindow(tag)
}

func (h *stubHost) WindowNumber(w plugin.Window) (int, bool) {
	for i, candidate := range h.windows {
		if candidate == w {
			return i + 2, true
		}
	}
	return 0, false
}

func (h *stubHost) SwitchWindow(num int) bool { h.current = num; return true }

func (h *stubHost) IsCurrent(w plugin.Window) bool {
	num, _ := h.WindowNumber(w)
	return num == h.current
}

func (h *stubHost) PrintLine(w plugin.Window, attr theme.Attr, text string) {
	h.lines[w.Tag()] = append(h.lines[w.Tag()], text)
	h.attrs[w.Tag()] = append(h.attrs[w.Tag()], attr)
}

func (h *stubHost) MarkActive(int) {}
func (h *stubHost) Redraw()        {}

func (h *stubHost) ConsoleShow(message string) { h.console = append(h.console, message) }
func (h *stubHost) ConsoleAlert()              {}

func (h *stubHost) Notify(message, category string, timeout time.Duration) {
	h.notified = append(h.notified, category+":"+message+":"+timeout.String())
}

func (h *stubHost) SendLine(line string) { h.sent = append(h.sent, line) }

func (h *stubHost) CurrentRecipient() (string, bool) { return h.recipient, h.recipient != "" }

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

func setup(t *testing.T) (*plugin.Runtime, *stubHost, *manualClock, *Plugin) {
	t.Helper()
	host := newStubHost()
	clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rt := plugin.NewRuntime(host, plugin.WithClock(clock))
	p := New(rt.API("test"))
	t.Cleanup(p.Close)
	return rt, host, clock, p
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "weather", NameFromPath("/home/me/.termchat/plugins/weather.lua"))
	assert.Equal(t, "noext", NameFromPath("noext"))
}

func TestOnlySafeLibrariesAreOpen(t *testing.T) {
	_, _, _, p := setup(t)

	require.NoError(t, p.DoString(`assert(string.upper("a") == "A")`))
	require.NoError(t, p.DoString(`assert(math.max(1, 2) == 2)`))
	require.NoError(t, p.DoString(`assert(io == nil and os == nil)`))
	require.NoError(t, p.DoString(`assert(dofile == nil and loadstring == nil)`))
}

func TestRegisterCommandAndDispatch(t *testing.T) {
	rt, host, _, p := setup(t)

	require.NoError(t, p.DoString(`
		ok = prof.register_command("/echo", 1, 1, "/echo <text>", "Echo text", "", function(text)
			prof.cons_show("echo: " .. text)
		end)
		assert(ok)
		prof.register_command("/bye", 0, 0, "/bye", "", "", function() return false end)
	`))

	spec, ok := rt.Registry.Command("/echo")
	require.True(t, ok)
	assert.Equal(t, "test", spec.Owner)
	assert.Equal(t, "Echo text", spec.ShortHelp)

	cont, err := rt.Dispatcher.Dispatch("/echo", []string{"hi"})
	require.NoError(t, err)
	assert.True(t, cont)
	assert.Equal(t, []string{"echo: hi"}, host.console)

	cont, err = rt.Dispatcher.Dispatch("/bye", nil)
	require.NoError(t, err)
	assert.False(t, cont)
}

func TestRegistrationErrorsReturnToScript(t *testing.T) {
	_, _, _, p := setup(t)

	require.NoError(t, p.DoString(`
		local cb = function() end
		assert(prof.register_command("/dup", 0, 0, "", "", "", cb))
		ok, err = prof.register_command("/dup", 0, 0, "", "", "", cb)
		assert(ok == false)
		assert(string.find(err, "already registered"))

		id, err2 = prof.register_timed(cb, 0)
		assert(id == false)
		assert(err2 ~= nil)
	`))
}

func TestScriptErrorBecomesCallbackError(t *testing.T) {
	rt, _, _, p := setup(t)

	require.NoError(t, p.DoString(`
		prof.register_command("/boom", 0, prof.UNBOUNDED, "", "", "", function() error("kaboom") end)
	`))

	cont, err := rt.Dispatcher.Dispatch("/boom", []string{"a", "b"})
	assert.True(t, cont)
	var cbErr *plugin.CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestTimedTaskRunsFromScheduler(t *testing.T) {
	rt, host, clock, p := setup(t)

	require.NoError(t, p.DoString(`
		count = 0
		id = prof.register_timed(function()
			count = count + 1
			prof.cons_show("tick " .. count)
		end, 2)
		assert(type(id) == "string")
	`))

	clock.now = clock.now.Add(2 * time.Second)
	assert.Equal(t, 1, rt.Scheduler.Tick().Fired)
	assert.Equal(t, []string{"tick 1"}, host.console)
}

func TestWindowFunctions(t *testing.T) {
	rt, host, _, p := setup(t)

	require.NoError(t, p.DoString(`
		assert(prof.win_exists("w") == false)
		assert(prof.win_create("w", function(tag, line)
			prof.win_show(tag, "got " .. line)
		end))
		assert(prof.win_exists("w"))
		prof.win_show_red("w", "red")
		prof.win_show_green("w", "green")
		local ok, err = prof.win_show("missing", "x")
		assert(ok == false)
		assert(prof.win_focus("w"))
	`))

	delivered, err := rt.Mediator.Deliver("w", "hello")
	require.NoError(t, err)
	assert.True(t, delivered)

	assert.Equal(t, []string{"red", "green", "got hello"}, host.lines["w"])
	assert.Equal(t, []theme.Attr{theme.Offline, theme.Online, theme.Text}, host.attrs["w"])
	assert.Equal(t, 2, host.current)
}

func TestAutocompleteRegistration(t *testing.T) {
	rt, _, _, p := setup(t)

	require.NoError(t, p.DoString(`prof.register_ac("/weather", {"london", "paris"})`))
	assert.Equal(t, []string{"london", "paris"}, rt.Registry.AutocompleteItems("/weather"))

	line, ok := rt.Binder.CompleteLine("/weather p")
	require.True(t, ok)
	assert.Equal(t, "/weather paris", line)
}

func TestAutocompleteItemTypes(t *testing.T) {
	rt, _, _, p := setup(t)

	require.NoError(t, p.DoString(`prof.register_ac("/nums", {"a", 1, 2.5})`))
	assert.Equal(t, []string{"a", "1", "2.5"}, rt.Registry.AutocompleteItems("/nums"))

	require.NoError(t, p.DoString(`
		ok, err = prof.register_ac("/bad", {"a", true})
		assert(ok == false)
		assert(string.find(err, "item 2 is a boolean"))
	`))
	assert.Empty(t, rt.Registry.AutocompleteItems("/bad"))
}

func TestConsoleAndHostFunctions(t *testing.T) {
	_, host, _, p := setup(t)
	host.recipient = "alice@example.com"

	require.NoError(t, p.DoString(`
		prof.notify("ding", 1000, "weather")
		prof.notify("dong")
		prof.send_line("/wins")
		prof.cons_show(prof.get_current_recipient())
		print("to the log")
	`))

	assert.Equal(t, []string{"weather:ding:1s", "test:dong:5s"}, host.notified)
	assert.Equal(t, []string{"/wins"}, host.sent)
	assert.Equal(t, []string{"alice@example.com"}, host.console)
}

func TestLoadFromFile(t *testing.T) {
	host := newStubHost()
	rt := plugin.NewRuntime(host)

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.lua")
	require.NoError(t, os.WriteFile(path, []byte(`prof.register_command("/hello", 0, 0, "/hello", "", "", function() end)`), 0644))

	p, err := Load(rt, path)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, "hello", p.Name())

	spec, ok := rt.Registry.Command("/hello")
	require.True(t, ok)
	assert.Equal(t, "hello", spec.Owner)
}

func TestLoadFailureUnloadsPartialRegistrations(t *testing.T) {
	host := newStubHost()
	rt := plugin.NewRuntime(host)

	path := filepath.Join(t.TempDir(), "broken.lua")
	require.NoError(t, os.WriteFile(path, []byte(`
		prof.register_command("/half", 0, 0, "", "", "", function() end)
		error("broken")
	`), 0644))

	_, err := Load(rt, path)
	require.Error(t, err)
	_, ok := rt.Registry.Command("/half")
	assert.False(t, ok)
}

func TestCallbackAfterClose(t *testing.T) {
	rt, _, _, p := setup(t)
	require.NoError(t, p.DoString(`prof.register_command("/x", 0, 0, "", "", "", function() end)`))

	p.Close()
	_, err := rt.Dispatcher.Dispatch("/x", nil)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, p.DoString(`x = 1`), ErrClosed)
}
