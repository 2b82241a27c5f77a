package commands

import (
	"termchat/cmd"
	"termchat/plugin"
)

// RegisterBuiltins registers the client's built-in commands.
func RegisterBuiltins(registry *cmd.CommandRegistry) {
	registry.Register(&cmd.Command{
		ID:          "/help",
		Usage:       "/help [command]",
		Description: "Show help for all commands or one command",
		Category:    cmd.CategorySystem,
		Handler:     HelpCommand,
	}).Args(0, 1)

	registry.Register(&cmd.Command{
		ID:          "/quit",
		Usage:       "/quit",
		Description: "Exit the client",
		Category:    cmd.CategorySystem,
		Handler:     QuitCommand,
	}).Args(0, 0).Alias("/exit")

	registry.Register(&cmd.Command{
		ID:          "/wins",
		Usage:       "/wins",
		Description: "List open windows",
		Category:    cmd.CategoryWindows,
		Handler:     WinsCommand,
	}).Args(0, 0)

	registry.Register(&cmd.Command{
		ID:          "/win",
		Usage:       "/win <num>",
		Description: "Switch to window number num",
		Help:        "alt+left and alt+right also cycle through the windows.",
		Category:    cmd.CategoryWindows,
		Handler:     WinCommand,
	}).Args(1, 1)

	registry.Register(&cmd.Command{
		ID:          "/close",
		Usage:       "/close [num]",
		Description: "Close the current window or window num",
		Help:        "The console window cannot be closed.",
		Category:    cmd.CategoryWindows,
		Handler:     CloseCommand,
	}).Args(0, 1)

	registry.Register(&cmd.Command{
		ID:          "/msg",
		Usage:       "/msg <contact> [message]",
		Description: "Open a chat window with contact",
		Category:    cmd.CategoryWindows,
		Handler:     MsgCommand,
	}).Args(1, plugin.Unbounded)

	registry.Register(&cmd.Command{
		ID:          "/plugins",
		Usage:       "/plugins",
		Description: "List loaded plugins",
		Category:    cmd.CategoryPlugins,
		Handler:     PluginsCommand,
	}).Args(0, 0)

	registry.Register(&cmd.Command{
		ID:          "/copy",
		Usage:       "/copy",
		Description: "Copy the last line of the current window",
		Category:    cmd.CategorySystem,
		Handler:     CopyCommand,
	}).Args(0, 0)

	registry.Register(&cmd.Command{
		ID:          "/beep",
		Usage:       "/beep on|off",
		Description: "Ring the terminal bell on console alerts",
		Category:    cmd.CategorySystem,
		Handler:     BeepCommand,
	}).Args(1, 1)
}

// BooleanCompletions are the completion candidates for on/off settings.
var BooleanCompletions = []string{"on", "off"}

// RegisterCompletions adds argument completion for built-ins to the plugin
// binder under owner.
func RegisterCompletions(binder *plugin.Binder, owner string) error {
	return binder.Register(owner, "/beep", BooleanCompletions)
}
