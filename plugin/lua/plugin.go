// Package lua runs plugins written in Lua on top of the plugin runtime.
//
// Each script gets its own interpreter state with a global "prof" table that
// mirrors plugin.API. Lua functions handed to prof become plugin.Callback
// values, so the registry, scheduler and dispatcher never see Lua directly.
package lua

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"termchat/log"
	"termchat/plugin"
)

// ErrClosed is returned when calling into a plugin after Close.
var ErrClosed = errors.New("lua plugin is closed")

// Plugin is one loaded Lua script.
type Plugin struct {
	api *plugin.API
	L   *lua.LState

	closed bool
}

// NameFromPath derives a plugin name from a script path: the base name
// without its extension.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// New creates an interpreter bound to api. Only the base, table, string and
// math libraries are available to the script.
func New(api *plugin.API) *Plugin {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	p := &Plugin{api: api, L: L}
	L.SetGlobal("print", L.NewFunction(p.print))
	L.SetGlobal("prof", p.module())
	return p
}

// Load creates a plugin named after path and runs the script.
func Load(rt *plugin.Runtime, path string) (*Plugin, error) {
	p := New(rt.API(NameFromPath(path)))
	if err := p.DoFile(path); err != nil {
		p.Close()
		rt.Unload(p.Name())
		return nil, err
	}
	log.InfoLog.Printf("loaded plugin %s from %s", p.Name(), path)
	return p, nil
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return p.api.Owner()
}

// DoFile runs the script at path.
func (p *Plugin) DoFile(path string) error {
	if p.closed {
		return ErrClosed
	}
	if err := p.protect(func() error { return p.L.DoFile(path) }); err != nil {
		return fmt.Errorf("plugin %s: %w", p.Name(), err)
	}
	return nil
}

// DoString runs code in the plugin's state.
func (p *Plugin) DoString(code string) error {
	if p.closed {
		return ErrClosed
	}
	if err := p.protect(func() error { return p.L.DoString(code) }); err != nil {
		return fmt.Errorf("plugin %s: %w", p.Name(), err)
	}
	return nil
}

// Close releases the interpreter. Callbacks still held by the registry fail
// with ErrClosed afterwards; unload the plugin from the runtime as well.
func (p *Plugin) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.L.Close()
}

func (p *Plugin) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// print sends its arguments to the plugin log instead of stdout, which
// belongs to the terminal UI.
func (p *Plugin) print(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	p.api.LogInfo(strings.Join(parts, "\t"))
	return 0
}

// callback adapts a Lua function to plugin.Callback. The function receives
// its arguments as separate string parameters. Returning false asks the host
// to stop; any other result, including none, means continue.
type callback struct {
	p  *Plugin
	fn *lua.LFunction
}

func (c *callback) Invoke(args []string) (bool, error) {
	if c.p.closed {
		return true, ErrClosed
	}

	L := c.p.L
	params := make([]lua.LValue, len(args))
	for i, arg := range args {
		params[i] = lua.LString(arg)
	}

	if err := L.CallByParam(lua.P{Fn: c.fn, NRet: 1, Protect: true}, params...); err != nil {
		return true, err
	}
	ret := L.Get(-1)
	L.Pop(1)

	if b, ok := ret.(lua.LBool); ok && !bool(b) {
		return false, nil
	}
	return true, nil
}

func (p *Plugin) callbackArg(L *lua.LState, n int) plugin.Callback {
	return &callback{p: p, fn: L.CheckFunction(n)}
}

// optCallbackArg is like callbackArg but allows nil.
func (p *Plugin) optCallbackArg(L *lua.LState, n int) plugin.Callback {
	if L.Get(n) == lua.LNil {
		return nil
	}
	return p.callbackArg(L, n)
}
