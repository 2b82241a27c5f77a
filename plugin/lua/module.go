package lua

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"termchat/plugin"
)

// module builds the prof table.
//
// Registration functions return true on success, or false and an error
// message when the runtime rejects the call. Window writes behave the same.
func (p *Plugin) module() *lua.LTable {
	L := p.L
	mod := L.NewTable()

	fns := map[string]lua.LGFunction{
		"register_command":      p.registerCommand,
		"register_timed":        p.registerTimed,
		"register_ac":           p.registerAC,
		"win_create":            p.winCreate,
		"win_handler":           p.winHandler,
		"win_exists":            p.winExists,
		"win_focus":             p.winFocus,
		"win_show":              p.winShow(plugin.StylePlain),
		"win_show_green":        p.winShow(plugin.StyleGood),
		"win_show_red":          p.winShow(plugin.StyleBad),
		"win_show_cyan":         p.winShow(plugin.StyleCautionary),
		"win_show_yellow":       p.winShow(plugin.StyleIncomingHighlight),
		"cons_show":             p.consShow,
		"cons_alert":            p.consAlert,
		"notify":                p.notify,
		"send_line":             p.sendLine,
		"get_current_recipient": p.currentRecipient,
		"log_debug":             p.logAt(p.api.LogDebug),
		"log_info":              p.logAt(p.api.LogInfo),
		"log_warning":           p.logAt(p.api.LogWarning),
		"log_error":             p.logAt(p.api.LogError),
	}
	for name, fn := range fns {
		L.SetField(mod, name, L.NewFunction(fn))
	}

	L.SetField(mod, "UNBOUNDED", lua.LNumber(plugin.Unbounded))
	return mod
}

// pushResult pushes true, or false and the error message.
func pushResult(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// register_command(name, min_args, max_args, usage, short_help, long_help, fn)
func (p *Plugin) registerCommand(L *lua.LState) int {
	name := L.CheckString(1)
	minArgs := L.CheckInt(2)
	maxArgs := L.CheckInt(3)
	usage := L.OptString(4, name)
	shortHelp := L.OptString(5, "")
	longHelp := L.OptString(6, "")
	cb := p.callbackArg(L, 7)

	return pushResult(L, p.api.RegisterCommand(name, minArgs, maxArgs, usage, shortHelp, longHelp, cb))
}

// register_timed(fn, interval_seconds) -> id | false, err
func (p *Plugin) registerTimed(L *lua.LState) int {
	cb := p.callbackArg(L, 1)
	interval := L.CheckInt(2)

	id, err := p.api.RegisterTimed(cb, interval)
	if err != nil {
		return pushResult(L, err)
	}
	L.Push(lua.LString(id))
	return 1
}

// register_ac(key, {items...})
func (p *Plugin) registerAC(L *lua.LState) int {
	key := L.CheckString(1)
	tbl := L.CheckTable(2)

	items := make([]string, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		switch v := tbl.RawGetInt(i).(type) {
		case lua.LString, lua.LNumber:
			items = append(items, lua.LVAsString(v))
		default:
			return pushResult(L, fmt.Errorf("register_ac %s: item %d is a %s, want string", key, i, v.Type()))
		}
	}
	return pushResult(L, p.api.RegisterAutocomplete(key, items))
}

// win_create(tag, fn?)
func (p *Plugin) winCreate(L *lua.LState) int {
	tag := L.CheckString(1)
	return pushResult(L, p.api.WinCreate(tag, p.optCallbackArg(L, 2)))
}

// win_handler(tag, fn) binds fn without opening the window.
func (p *Plugin) winHandler(L *lua.LState) int {
	tag := L.CheckString(1)
	return pushResult(L, p.api.RegisterWindowHandler(tag, p.callbackArg(L, 2)))
}

func (p *Plugin) winExists(L *lua.LState) int {
	L.Push(lua.LBool(p.api.WinExists(L.CheckString(1))))
	return 1
}

func (p *Plugin) winFocus(L *lua.LState) int {
	return pushResult(L, p.api.WinFocus(L.CheckString(1)))
}

func (p *Plugin) winShow(hint plugin.StyleHint) lua.LGFunction {
	return func(L *lua.LState) int {
		tag := L.CheckString(1)
		line := L.CheckString(2)
		return pushResult(L, p.api.WinShowStyled(tag, line, hint))
	}
}

func (p *Plugin) consShow(L *lua.LState) int {
	p.api.ConsoleShow(L.CheckString(1))
	return 0
}

func (p *Plugin) consAlert(L *lua.LState) int {
	p.api.ConsoleAlert()
	return 0
}

// notify(message, timeout_ms, category)
func (p *Plugin) notify(L *lua.LState) int {
	message := L.CheckString(1)
	timeout := time.Duration(L.OptInt(2, 5000)) * time.Millisecond
	category := L.OptString(3, p.Name())
	p.api.Notify(message, category, timeout)
	return 0
}

func (p *Plugin) sendLine(L *lua.LState) int {
	p.api.SendLine(L.CheckString(1))
	return 0
}

// get_current_recipient() -> jid | nil
func (p *Plugin) currentRecipient(L *lua.LState) int {
	recipient, ok := p.api.CurrentRecipient()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(recipient))
	return 1
}

func (p *Plugin) logAt(fn func(string)) lua.LGFunction {
	return func(L *lua.LState) int {
		fn(L.CheckString(1))
		return 0
	}
}
