package cmd

import (
	"fmt"
	"sort"
	"strings"

	"termchat/cmd/interfaces"
	"termchat/plugin"
)

// Use types from interfaces package to avoid duplication
type CommandID = interfaces.CommandID
type Category = interfaces.Category

// CommandRegistry holds the client's built-in slash commands. Plugin
// commands live in the plugin registry; built-ins are looked up first.
type CommandRegistry struct {
	commands map[CommandID]*Command
	aliases  map[string]CommandID
}

// Command is a built-in slash command.
type Command struct {
	ID          CommandID
	Usage       string
	Description string
	// Help is the long help shown by /help <command>.
	Help     string
	Category Category
	Handler  CommandHandler

	// MinArgs and MaxArgs bound the argument count; MaxArgs of
	// plugin.Unbounded accepts any number.
	MinArgs int
	MaxArgs int

	aliases []string
}

// CommandContext is passed to a handler.
type CommandContext struct {
	Registry *CommandRegistry
	Command  *Command
	Args     []string
	Host     interfaces.Host

	// Quit is set by a handler that wants the client to exit.
	Quit bool
}

// CommandHandler is the function signature for command implementations
type CommandHandler func(ctx *CommandContext) error

// NewCommandRegistry creates an empty registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[CommandID]*Command),
		aliases:  make(map[string]CommandID),
	}
}

// Register adds a command to the registry and returns a builder for further
// configuration.
func (r *CommandRegistry) Register(cmd *Command) *CommandBuilder {
	// Validate required fields
	if !strings.HasPrefix(string(cmd.ID), "/") {
		panic(fmt.Sprintf("command ID %q must start with /", cmd.ID))
	}
	if cmd.Handler == nil {
		panic("command handler cannot be nil")
	}
	if _, exists := r.commands[cmd.ID]; exists {
		panic(fmt.Sprintf("command %s already registered", cmd.ID))
	}

	r.commands[cmd.ID] = cmd
	return &CommandBuilder{registry: r, command: cmd}
}

// CommandBuilder provides a fluent interface for configuring commands
type CommandBuilder struct {
	registry *CommandRegistry
	command  *Command
}

// Alias makes each name resolve to the command.
func (cb *CommandBuilder) Alias(names ...string) *CommandBuilder {
	for _, name := range names {
		cb.command.aliases = append(cb.command.aliases, name)
		cb.registry.aliases[name] = cb.command.ID
	}
	return cb
}

// Args sets the argument bounds.
func (cb *CommandBuilder) Args(minArgs, maxArgs int) *CommandBuilder {
	cb.command.MinArgs = minArgs
	cb.command.MaxArgs = maxArgs
	return cb
}

// Resolve finds the command called name, following aliases.
func (r *CommandRegistry) Resolve(name string) (*Command, bool) {
	if cmd, ok := r.commands[CommandID(name)]; ok {
		return cmd, true
	}
	if id, ok := r.aliases[name]; ok {
		return r.commands[id], true
	}
	return nil, false
}

// Commands returns every built-in sorted by name.
func (r *CommandRegistry) Commands() []*Command {
	out := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Names returns every built-in name and alias, sorted.
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands)+len(r.aliases))
	for id := range r.commands {
		names = append(names, string(id))
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// Aliases returns the command's aliases.
func (c *Command) Aliases() []string {
	out := make([]string, len(c.aliases))
	copy(out, c.aliases)
	return out
}

// AcceptsArgs reports whether n arguments are within the command's bounds.
func (c *Command) AcceptsArgs(n int) bool {
	if n < c.MinArgs {
		return false
	}
	return c.MaxArgs == plugin.Unbounded || n <= c.MaxArgs
}

// Execute runs the built-in called name. It returns plugin.ErrUnknownCommand
// if there is none and a *plugin.UsageError when the argument count is
// outside the command's bounds, so callers report both kinds of command the
// same way. The boolean result is false when the handler asked to quit.
func (r *CommandRegistry) Execute(host interfaces.Host, name string, args []string) (bool, error) {
	cmd, ok := r.Resolve(name)
	if !ok {
		return true, plugin.ErrUnknownCommand
	}
	if !cmd.AcceptsArgs(len(args)) {
		return true, &plugin.UsageError{Command: name, Usage: cmd.Usage, Got: len(args)}
	}

	ctx := &CommandContext{Registry: r, Command: cmd, Args: args, Host: host}
	if err := cmd.Handler(ctx); err != nil {
		return true, fmt.Errorf("%s: %w", cmd.ID, err)
	}
	return !ctx.Quit, nil
}

// String returns a debug string representation of the registry
func (r *CommandRegistry) String() string {
	var sb strings.Builder
	sb.WriteString("CommandRegistry:\n")
	for _, cmd := range r.Commands() {
		sb.WriteString(fmt.Sprintf("  %s: %s (%v)\n", cmd.ID, cmd.Description, cmd.aliases))
	}
	return sb.String()
}
