package interfaces

// CommandID is a built-in command name including its leading slash.
type CommandID string

// Category groups related commands for help display
type Category string

// Standard command categories
const (
	CategoryWindows Category = "Windows"
	CategoryPlugins Category = "Plugins"
	CategorySystem  Category = "System"
	CategorySpecial Category = "Special" // Hidden from main help
)
