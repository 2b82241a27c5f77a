package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"termchat/cmd"
	"termchat/log"
	"termchat/ui"
	"termchat/ui/theme"
)

// WinsCommand lists the open windows.
func WinsCommand(ctx *cmd.CommandContext) error {
	table := ctx.Host.Windows()
	ctx.Host.Print(theme.Text, "Active windows:")
	for _, line := range table.Summary() {
		ctx.Host.Print(theme.Text, "  "+line)
	}
	return nil
}

// WinCommand switches to the window with the given number.
func WinCommand(ctx *cmd.CommandContext) error {
	num, err := strconv.Atoi(ctx.Args[0])
	if err != nil || !ctx.Host.Windows().SwitchWindow(num) {
		ctx.Host.Print(theme.Error, fmt.Sprintf("Window %s does not exist.", ctx.Args[0]))
	}
	return nil
}

// CloseCommand closes the current window, or the window with the given
// number. Closing a plugin window drops its binding, so the plugin can
// create the tag again.
func CloseCommand(ctx *cmd.CommandContext) error {
	table := ctx.Host.Windows()
	num := table.CurrentNumber()
	if len(ctx.Args) == 1 {
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil {
			ctx.Host.Print(theme.Error, fmt.Sprintf("Window %s does not exist.", ctx.Args[0]))
			return nil
		}
		num = n
	}

	w, err := table.Close(num)
	switch {
	case err == nil:
	case errors.Is(err, ui.ErrCloseConsole):
		ctx.Host.Print(theme.Text, "Cannot close the console window.")
		return nil
	case errors.Is(err, ui.ErrNoSuchWindow):
		ctx.Host.Print(theme.Error, fmt.Sprintf("Window %d does not exist.", num))
		return nil
	default:
		return err
	}

	if w.Kind() == ui.KindPlugin {
		ctx.Host.Runtime().Registry.RemoveWindowHandler(w.Tag())
		log.DebugLog.Printf("closed plugin window %s", w.Tag())
	}
	ctx.Host.Print(theme.Text, fmt.Sprintf("Closed window %d.", num))
	return nil
}

// MsgCommand opens or focuses the chat window for a contact. Any further
// arguments are echoed into it as the user's message.
func MsgCommand(ctx *cmd.CommandContext) error {
	table := ctx.Host.Windows()
	contact := ctx.Args[0]

	w, ok := table.FindChat(contact)
	if !ok {
		var err error
		if w, err = table.NewChatWindow(contact); err != nil {
			return err
		}
	}
	if num, ok := table.WindowNumber(w); ok {
		table.SwitchWindow(num)
	}
	if len(ctx.Args) > 1 {
		table.PrintLine(w, theme.Text, "me: "+strings.Join(ctx.Args[1:], " "))
		table.Redraw()
	}
	return nil
}
