package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeySubmit KeyName = iota
	KeyComplete
	KeyPrevWindow
	KeyNextWindow
	KeyScrollUp
	KeyScrollDown
	KeyClearInput
	KeyHelp
	KeyQuit

	KeyHistoryUp   // Recall the previous input line
	KeyHistoryDown // Recall the next input line

	// Direct window selection, alt+1 through alt+9.
	KeyWindow1
	KeyWindow2
	KeyWindow3
	KeyWindow4
	KeyWindow5
	KeyWindow6
	KeyWindow7
	KeyWindow8
	KeyWindow9
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"enter":     KeySubmit,
	"tab":       KeyComplete,
	"alt+left":  KeyPrevWindow,
	"alt+right": KeyNextWindow,
	"pgup":      KeyScrollUp,
	"pgdown":    KeyScrollDown,
	"esc":       KeyClearInput,
	"f1":        KeyHelp,
	"ctrl+c":    KeyQuit,
	"up":        KeyHistoryUp,
	"down":      KeyHistoryDown,
	"alt+1":     KeyWindow1,
	"alt+2":     KeyWindow2,
	"alt+3":     KeyWindow3,
	"alt+4":     KeyWindow4,
	"alt+5":     KeyWindow5,
	"alt+6":     KeyWindow6,
	"alt+7":     KeyWindow7,
	"alt+8":     KeyWindow8,
	"alt+9":     KeyWindow9,
}

// WindowNumber returns the window a direct selection key jumps to.
func WindowNumber(name KeyName) (int, bool) {
	if name < KeyWindow1 || name > KeyWindow9 {
		return 0, false
	}
	return int(name-KeyWindow1) + 1, true
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeySubmit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "send"),
	),
	KeyComplete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete"),
	),
	KeyPrevWindow: key.NewBinding(
		key.WithKeys("alt+left"),
		key.WithHelp("alt+←", "previous window"),
	),
	KeyNextWindow: key.NewBinding(
		key.WithKeys("alt+right"),
		key.WithHelp("alt+→", "next window"),
	),
	KeyScrollUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	KeyScrollDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	KeyClearInput: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear input"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("^c", "quit"),
	),
	KeyHistoryUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous input"),
	),
	KeyHistoryDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next input"),
	),

	// -- Direct window selection --

	KeyWindow1: key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "window 1")),
	KeyWindow2: key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "window 2")),
	KeyWindow3: key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "window 3")),
	KeyWindow4: key.NewBinding(key.WithKeys("alt+4"), key.WithHelp("alt+4", "window 4")),
	KeyWindow5: key.NewBinding(key.WithKeys("alt+5"), key.WithHelp("alt+5", "window 5")),
	KeyWindow6: key.NewBinding(key.WithKeys("alt+6"), key.WithHelp("alt+6", "window 6")),
	KeyWindow7: key.NewBinding(key.WithKeys("alt+7"), key.WithHelp("alt+7", "window 7")),
	KeyWindow8: key.NewBinding(key.WithKeys("alt+8"), key.WithHelp("alt+8", "window 8")),
	KeyWindow9: key.NewBinding(key.WithKeys("alt+9"), key.WithHelp("alt+9", "window 9")),
}
