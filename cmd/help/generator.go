package help

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"termchat/cmd"
	"termchat/plugin"
)

// Generator creates help content from the built-in and plugin command
// registries.
type Generator struct {
	builtins *cmd.CommandRegistry
	plugins  *plugin.Registry

	// Styles for formatting help content
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	keyStyle    lipgloss.Style
	descStyle   lipgloss.Style
	warnStyle   lipgloss.Style
}

// NewGenerator creates a new help generator
func NewGenerator(builtins *cmd.CommandRegistry, plugins *plugin.Registry) *Generator {
	return &Generator{
		builtins:    builtins,
		plugins:     plugins,
		titleStyle:  lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#7D56F4")),
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#36CFC9")),
		keyStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00")),
		descStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")),
	}
}

// GenerateOverview lists every command, built-ins grouped by category and
// plugin commands grouped by plugin.
func (g *Generator) GenerateOverview() []string {
	lines := []string{g.titleStyle.Render("Commands"), ""}

	categories := g.groupCommandsByCategory(g.builtins.Commands())
	sortedCategories := make([]cmd.Category, 0, len(categories))
	for category := range categories {
		if !cmd.IsHiddenCategory(category) {
			sortedCategories = append(sortedCategories, category)
		}
	}
	sort.Slice(sortedCategories, func(i, j int) bool {
		return cmd.GetCategoryPriority(sortedCategories[i]) < cmd.GetCategoryPriority(sortedCategories[j])
	})

	for _, category := range sortedCategories {
		lines = append(lines, g.headerStyle.Render(string(category)+":"))
		for _, command := range categories[category] {
			lines = append(lines, g.formatLine(string(command.ID), command.Description))
		}
		lines = append(lines, "")
	}

	byOwner := make(map[string][]*plugin.CommandSpec)
	var owners []string
	for _, spec := range g.plugins.Commands() {
		if _, seen := byOwner[spec.Owner]; !seen {
			owners = append(owners, spec.Owner)
		}
		byOwner[spec.Owner] = append(byOwner[spec.Owner], spec)
	}
	sort.Strings(owners)

	for _, owner := range owners {
		header := "Plugin commands"
		if owner != "" {
			header = fmt.Sprintf("Plugin %s", owner)
		}
		lines = append(lines, g.headerStyle.Render(header+":"))
		for _, spec := range byOwner[owner] {
			lines = append(lines, g.formatLine(spec.Name, spec.ShortHelp))
		}
		lines = append(lines, "")
	}

	lines = append(lines, g.descStyle.Render("Use /help <command> for details."))
	return lines
}

// GenerateCommandHelp describes a single command. Built-ins shadow plugin
// commands of the same name, as they do when dispatching.
func (g *Generator) GenerateCommandHelp(name string) ([]string, error) {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}

	if command, ok := g.builtins.Resolve(name); ok {
		lines := []string{
			g.titleStyle.Render(string(command.ID)),
			"",
			"Usage: " + command.Usage,
		}
		if command.Description != "" {
			lines = append(lines, "", command.Description)
		}
		if command.Help != "" {
			lines = append(lines, strings.Split(command.Help, "\n")...)
		}
		if aliases := command.Aliases(); len(aliases) > 0 {
			lines = append(lines, "", "Aliases: "+strings.Join(aliases, ", "))
		}
		return lines, nil
	}

	if spec, ok := g.plugins.Command(name); ok {
		lines := []string{
			g.titleStyle.Render(spec.Name),
			"",
			"Usage: " + spec.Usage,
		}
		if spec.ShortHelp != "" {
			lines = append(lines, "", spec.ShortHelp)
		}
		if spec.LongHelp != "" {
			lines = append(lines, strings.Split(spec.LongHelp, "\n")...)
		}
		if spec.Owner != "" {
			lines = append(lines, "", g.warnStyle.Render("Provided by plugin "+spec.Owner))
		}
		return lines, nil
	}

	return nil, fmt.Errorf("help %s: %w", name, plugin.ErrUnknownCommand)
}

// groupCommandsByCategory groups commands by their category
func (g *Generator) groupCommandsByCategory(commands []*cmd.Command) map[cmd.Category][]*cmd.Command {
	groups := make(map[cmd.Category][]*cmd.Command)

	for _, command := range commands {
		category := command.Category
		if category == "" {
			category = "Other"
		}
		groups[category] = append(groups[category], command)
	}

	return groups
}

func (g *Generator) formatLine(name, desc string) string {
	// Calculate padding for alignment
	padding := strings.Repeat(" ", max(0, 12-len(name)))
	return fmt.Sprintf("  %s%s - %s", g.keyStyle.Render(name), padding, g.descStyle.Render(g.truncateDescription(desc, 60)))
}

// truncateDescription truncates a description to fit on one line
func (g *Generator) truncateDescription(desc string, maxLen int) string {
	if len(desc) <= maxLen {
		return desc
	}

	// Try to break at word boundary
	if maxLen > 3 {
		for i := maxLen - 3; i > maxLen/2; i-- {
			if desc[i] == ' ' {
				return desc[:i] + "..."
			}
		}
	}

	return desc[:maxLen-3] + "..."
}
