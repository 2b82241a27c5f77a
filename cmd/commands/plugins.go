package commands

import (
	"fmt"

	"termchat/cmd"
	"termchat/ui/theme"
)

// PluginsCommand lists loaded plugins with what each one registered.
func PluginsCommand(ctx *cmd.CommandContext) error {
	names := ctx.Host.Plugins()
	if len(names) == 0 {
		ctx.Host.Print(theme.Text, "No plugins loaded.")
		return nil
	}

	registry := ctx.Host.Runtime().Registry
	type counts struct{ commands, tasks, windows int }
	byOwner := make(map[string]*counts, len(names))
	for _, name := range names {
		byOwner[name] = &counts{}
	}
	for _, spec := range registry.Commands() {
		if c, ok := byOwner[spec.Owner]; ok {
			c.commands++
		}
	}
	for _, task := range registry.TimedTasks() {
		if c, ok := byOwner[task.Owner]; ok {
			c.tasks++
		}
	}
	for _, b := range registry.WindowBindings() {
		if c, ok := byOwner[b.Owner]; ok {
			c.windows++
		}
	}

	ctx.Host.Print(theme.Text, "Loaded plugins:")
	for _, name := range names {
		c := byOwner[name]
		ctx.Host.Print(theme.Text, fmt.Sprintf("  %s: %d commands, %d timed, %d windows", name, c.commands, c.tasks, c.windows))
	}
	return nil
}
