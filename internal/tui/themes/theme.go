// Package themes holds the dashboard color themes.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	FilterLabel lipgloss.Style
	FilterValue lipgloss.Style
	FilterAll   lipgloss.Style
	StatusBar   lipgloss.Style
	Body        lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#1f77b4"),
	Muted:   lipgloss.Color("#737373"),
	Border:  lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#1f77b4")).
		Padding(0, 1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	FilterLabel: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	FilterValue: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff7f0e")),
	FilterAll: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	StatusBar: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(lipgloss.Color("#404040")),
	Body: lipgloss.NewStyle().
		Padding(0, 1),
}

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = Theme{
	Primary: lipgloss.Color("#cba6f7"),
	Muted:   lipgloss.Color("#6c7086"),
	Border:  lipgloss.Color("#45475a"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1e1e2e")).
		Background(lipgloss.Color("#cba6f7")).
		Padding(0, 1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6adc8")),
	FilterLabel: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6c7086")),
	FilterValue: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#f9e2af")),
	FilterAll: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#cdd6f4")),
	StatusBar: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6c7086")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(lipgloss.Color("#45475a")),
	Body: lipgloss.NewStyle().
		Padding(0, 1),
}

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
