package plugin

import (
	"time"

	"termchat/log"
)

// API is the surface a single plugin sees. Every registration is recorded
// under the plugin's name so it can be unloaded as a unit.
//
// Registration methods log failures to the plugin's log, so plugins may treat
// them as fire-and-forget, and also return the error for runtimes that can
// report it.
type API struct {
	owner string
	rt    *Runtime
}

// Owner returns the plugin name.
func (a *API) Owner() string {
	return a.owner
}

func (a *API) logErr(err error) error {
	if err != nil {
		log.LogForPlugin(a.owner, "error", "%v", err)
	}
	return err
}

// RegisterCommand registers a command. maxArgs of Unbounded accepts any
// number of arguments above minArgs.
func (a *API) RegisterCommand(name string, minArgs, maxArgs int, usage, shortHelp, longHelp string, cb Callback) error {
	return a.logErr(a.rt.Registry.RegisterCommand(CommandSpec{
		Name:      name,
		MinArgs:   minArgs,
		MaxArgs:   maxArgs,
		Usage:     usage,
		ShortHelp: shortHelp,
		LongHelp:  longHelp,
		Callback:  cb,
		Owner:     a.owner,
	}))
}

// RegisterTimed registers cb to run every intervalSeconds.
func (a *API) RegisterTimed(cb Callback, intervalSeconds int) (TaskID, error) {
	id, err := a.rt.Registry.RegisterTimed(a.owner, cb, intervalSeconds)
	return id, a.logErr(err)
}

// RegisterAutocomplete replaces the completion candidates under key.
func (a *API) RegisterAutocomplete(key string, items []string) error {
	return a.logErr(a.rt.Binder.Register(a.owner, key, items))
}

// RegisterWindowHandler binds cb to lines typed into the window for tag.
func (a *API) RegisterWindowHandler(tag string, cb Callback) error {
	return a.logErr(a.rt.Registry.RegisterWindowHandler(a.owner, tag, cb))
}

// WinCreate registers cb for tag and opens the tag's window.
func (a *API) WinCreate(tag string, cb Callback) error {
	_, err := a.rt.Mediator.Bind(a.owner, tag, cb)
	return a.logErr(err)
}

// WinExists reports whether a window exists for tag.
func (a *API) WinExists(tag string) bool {
	return a.rt.Mediator.Exists(tag)
}

// WinFocus makes the window for tag active.
func (a *API) WinFocus(tag string) error {
	return a.logErr(a.rt.Mediator.Focus(tag))
}

// WinShow prints line in the window for tag.
func (a *API) WinShow(tag, line string) error {
	return a.WinShowStyled(tag, line, StylePlain)
}

// WinShowGreen prints line with the "good" style.
func (a *API) WinShowGreen(tag, line string) error {
	return a.WinShowStyled(tag, line, StyleGood)
}

// WinShowRed prints line with the "bad" style.
func (a *API) WinShowRed(tag, line string) error {
	return a.WinShowStyled(tag, line, StyleBad)
}

// WinShowCyan prints line with the "cautionary" style.
func (a *API) WinShowCyan(tag, line string) error {
	return a.WinShowStyled(tag, line, StyleCautionary)
}

// WinShowYellow prints line with the "incoming highlight" style.
func (a *API) WinShowYellow(tag, line string) error {
	return a.WinShowStyled(tag, line, StyleIncomingHighlight)
}

// WinShowStyled prints line in the window for tag with hint.
func (a *API) WinShowStyled(tag, line string, hint StyleHint) error {
	return a.logErr(a.rt.Mediator.PostLine(tag, line, hint))
}

// ConsoleShow prints message in the console window. Empty messages are
// dropped.
func (a *API) ConsoleShow(message string) {
	if message == "" {
		return
	}
	a.rt.console.ConsoleShow(message)
}

// ConsoleAlert flags the console in the status bar.
func (a *API) ConsoleAlert() {
	a.rt.console.ConsoleAlert()
}

// Notify shows a transient notification.
func (a *API) Notify(message, category string, timeout time.Duration) {
	a.rt.console.Notify(message, category, timeout)
}

// SendLine processes line as if the user had typed it.
func (a *API) SendLine(line string) {
	a.rt.console.SendLine(line)
}

// CurrentRecipient returns the contact of the active window when it is a
// chat window.
func (a *API) CurrentRecipient() (string, bool) {
	return a.rt.console.CurrentRecipient()
}

func (a *API) LogDebug(message string) { log.LogForPlugin(a.owner, "debug", "%s", message) }

func (a *API) LogInfo(message string) { log.LogForPlugin(a.owner, "info", "%s", message) }

func (a *API) LogWarning(message string) { log.LogForPlugin(a.owner, "warning", "%s", message) }

func (a *API) LogError(message string) { log.LogForPlugin(a.owner, "error", "%s", message) }
