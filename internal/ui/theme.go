package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a colour palette for the interface.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Highlight  lipgloss.Color
	Panel      lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
}

// PinkTheme is the default palette.
var PinkTheme = Theme{
	Name:       "pink",
	Background: lipgloss.Color("#FCE4EC"),
	Foreground: lipgloss.Color("#880E4F"),
	Accent:     lipgloss.Color("#F8BBD0"),
	Highlight:  lipgloss.Color("#F48FB1"),
	Panel:      lipgloss.Color("#FFF0F5"),
	Muted:      lipgloss.Color("#AD7A8F"),
	Error:      lipgloss.Color("#C62828"),
}

// GreenTheme is the alternative palette.
var GreenTheme = Theme{
	Name:       "green",
	Background: lipgloss.Color("#E8F5E9"),
	Foreground: lipgloss.Color("#1B5E20"),
	Accent:     lipgloss.Color("#A5D6A7"),
	Highlight:  lipgloss.Color("#81C784"),
	Panel:      lipgloss.Color("#F1F8E9"),
	Muted:      lipgloss.Color("#6D8B6F"),
	Error:      lipgloss.Color("#C62828"),
}

// ThemeByName returns the named theme, falling back to pink.
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), GreenTheme.Name) {
		return GreenTheme
	}
	return PinkTheme
}

// Toggle switches between pink and green.
func (t Theme) Toggle() Theme {
	if t.Name == PinkTheme.Name {
		return GreenTheme
	}
	return PinkTheme
}

type styles struct {
	app      lipgloss.Style
	title    lipgloss.Style
	label    lipgloss.Style
	input    lipgloss.Style
	focused  lipgloss.Style
	list     lipgloss.Style
	row      lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	help     lipgloss.Style
	status   lipgloss.Style
	errorMsg lipgloss.Style
}

func newStyles(t Theme) styles {
	base := lipgloss.NewStyle().Foreground(t.Foreground)
	return styles{
		app:      base.Background(t.Background).Padding(1, 2),
		title:    base.Bold(true).MarginBottom(1),
		label:    base.Bold(true).Width(10),
		input:    base.Background(t.Accent).Padding(0, 1),
		focused:  base.Background(t.Highlight).Bold(true).Padding(0, 1),
		list:     base.Background(t.Panel).Border(lipgloss.RoundedBorder()).BorderForeground(t.Highlight).Padding(0, 1),
		row:      base,
		selected: base.Background(t.Highlight).Bold(true),
		done:     lipgloss.NewStyle().Foreground(t.Muted).Strikethrough(true),
		help:     lipgloss.NewStyle().Foreground(t.Muted),
		status:   base.Italic(true),
		errorMsg: lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}
