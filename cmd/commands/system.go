package commands

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"termchat/cmd"
	"termchat/cmd/help"
	"termchat/plugin"
	"termchat/ui/theme"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// HelpCommand shows the command overview, or details for one command.
func HelpCommand(ctx *cmd.CommandContext) error {
	gen := help.NewGenerator(ctx.Registry, ctx.Host.Runtime().Registry)
	if len(ctx.Args) == 0 {
		for _, line := range gen.GenerateOverview() {
			ctx.Host.Print(theme.Text, line)
		}
		return nil
	}

	lines, err := gen.GenerateCommandHelp(ctx.Args[0])
	if errors.Is(err, plugin.ErrUnknownCommand) {
		ctx.Host.Print(theme.Error, fmt.Sprintf("No such command: %s", ctx.Args[0]))
		return nil
	}
	if err != nil {
		return err
	}
	for _, line := range lines {
		ctx.Host.Print(theme.Text, line)
	}
	return nil
}

// QuitCommand exits the client.
func QuitCommand(ctx *cmd.CommandContext) error {
	ctx.Quit = true
	return nil
}

// CopyCommand copies the last line of the current window to the clipboard.
func CopyCommand(ctx *cmd.CommandContext) error {
	line, ok := ctx.Host.Windows().Current().LastLine()
	if !ok {
		ctx.Host.Print(theme.Text, "Nothing to copy.")
		return nil
	}
	if err := writeClipboard(line.Text); err != nil {
		ctx.Host.Print(theme.Error, "Could not copy to the clipboard.")
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	ctx.Host.Print(theme.Text, "Copied last line to the clipboard.")
	return nil
}

// BeepCommand turns the console alert bell on or off.
func BeepCommand(ctx *cmd.CommandContext) error {
	var on bool
	switch ctx.Args[0] {
	case "on":
		on = true
	case "off":
		on = false
	default:
		ctx.Host.Print(theme.Error, "Usage: "+ctx.Command.Usage)
		return nil
	}

	if err := ctx.Host.SetBeep(on); err != nil {
		return err
	}
	ctx.Host.Print(theme.Text, fmt.Sprintf("Sound set to %s.", ctx.Args[0]))
	return nil
}
