package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/walksim/internal/playback"
)

type styles struct {
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	walk     lipgloss.Style
	expected lipgloss.Style
	playing  lipgloss.Style
	paused   lipgloss.Style
	idle     lipgloss.Style
	err      lipgloss.Style
	help     lipgloss.Style
	chart    lipgloss.Style
	panel    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header:   lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		walk:     lipgloss.NewStyle().Foreground(t.Walk).Bold(true),
		expected: lipgloss.NewStyle().Foreground(t.Expected).Bold(true),
		playing:  lipgloss.NewStyle().Foreground(t.Playing).Bold(true),
		paused:   lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		idle:     lipgloss.NewStyle().Foreground(t.Muted).Bold(true),
		err:      lipgloss.NewStyle().Foreground(t.Error),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		chart:    lipgloss.NewStyle().Foreground(t.Walk).Padding(1, 0),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(40),
	}
}

func (s styles) status(m playback.Mode) lipgloss.Style {
	switch m {
	case playback.Playing:
		return s.playing
	case playback.Paused:
		return s.paused
	default:
		return s.idle
	}
}
