package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nexusriot/anacreon/internal/theme"
)

type styles struct {
	palette  theme.Palette
	title    lipgloss.Style
	subtle   lipgloss.Style
	ok       lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
	box      lipgloss.Style
	selected lipgloss.Style
	hl       lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	p := theme.PaletteFor(t)
	return styles{
		palette:  p,
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Text)),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Subtle)),
		ok:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.OK)),
		warn:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warn)),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.Border)).Padding(0, 1),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AccentFg)).Background(lipgloss.Color(p.Accent)),
		hl:       lipgloss.NewStyle().Reverse(true),
	}
}

func fg(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
