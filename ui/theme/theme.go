package theme

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Attr names a display attribute a window line can be printed with.
type Attr string

const (
	Text     Attr = "text"
	Online   Attr = "online"
	Offline  Attr = "offline"
	Away     Attr = "away"
	Incoming Attr = "incoming"
	Error    Attr = "error"
	TitleBar Attr = "titlebar"
	Status   Attr = "status"
	Active   Attr = "active"
)

var defaultColours = map[Attr]string{
	Text:     "#FFFFFF",
	Online:   "#36D399",
	Offline:  "#F87272",
	Away:     "#36CFC9",
	Incoming: "#FFCC00",
	Error:    "#FF5555",
	TitleBar: "#7D56F4",
	Status:   "#3C3C3C",
	Active:   "#FFCC00",
}

// Theme maps attributes to lipgloss styles.
type Theme struct {
	styles map[Attr]lipgloss.Style
}

// Default returns the built-in theme.
func Default() *Theme {
	t := &Theme{styles: make(map[Attr]lipgloss.Style, len(defaultColours))}
	for attr, colour := range defaultColours {
		t.styles[attr] = styleFor(attr, colour)
	}
	return t
}

// New returns the default theme with colour overrides applied. Unknown
// attribute names are reported as an error but do not stop the others from
// being applied.
func New(overrides map[string]string) (*Theme, error) {
	t := Default()
	var unknown []string
	for name, colour := range overrides {
		attr := Attr(name)
		if _, ok := defaultColours[attr]; !ok {
			unknown = append(unknown, name)
			continue
		}
		t.styles[attr] = styleFor(attr, colour)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return t, fmt.Errorf("unknown theme attributes: %v", unknown)
	}
	return t, nil
}

func styleFor(attr Attr, colour string) lipgloss.Style {
	switch attr {
	case TitleBar:
		return lipgloss.NewStyle().Bold(true).Background(lipgloss.Color(colour)).Foreground(lipgloss.Color("#FFFFFF"))
	case Status:
		return lipgloss.NewStyle().Background(lipgloss.Color(colour)).Foreground(lipgloss.Color("#FFFFFF"))
	case Active:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colour))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colour))
	}
}

// Style returns the style for attr, falling back to Text.
func (t *Theme) Style(attr Attr) lipgloss.Style {
	if s, ok := t.styles[attr]; ok {
		return s
	}
	return t.styles[Text]
}

// Render renders s with the style for attr.
func (t *Theme) Render(attr Attr, s string) string {
	return t.Style(attr).Render(s)
}
