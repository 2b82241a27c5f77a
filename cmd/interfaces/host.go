package interfaces

import (
	"termchat/plugin"
	"termchat/ui"
	"termchat/ui/theme"
)

// Host is what built-in command handlers may touch. The app implements it.
type Host interface {
	// Windows returns the window table.
	Windows() *ui.WindowTable
	// Runtime returns the plugin runtime.
	Runtime() *plugin.Runtime
	// Print shows a line of command output in the console.
	Print(attr theme.Attr, text string)
	// Plugins returns the names of the loaded plugins.
	Plugins() []string
	// Beep reports whether console alerts ring the bell.
	Beep() bool
	// SetBeep changes and persists the bell preference.
	SetBeep(on bool) error
}
