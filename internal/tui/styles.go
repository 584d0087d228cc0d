package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/feedpulse/feedpulse/internal/skin"
)

// styles holds the lipgloss styles for the dashboard chrome, derived from
// the active skin.
type styles struct {
	Section       lipgloss.Style
	ActiveSection lipgloss.Style
	PanelTitle    lipgloss.Style
	Header        lipgloss.Style
	StatusLine    lipgloss.Style
	Help          lipgloss.Style
	ErrorText     lipgloss.Style
}

func newStyles(s skin.Skin) styles {
	border := lipgloss.Color(s.Border)
	accent := lipgloss.Color(s.Accent)
	text := lipgloss.Color(s.Text)
	muted := lipgloss.Color(s.Muted)
	background := lipgloss.Color(s.Background)

	return styles{
		Section: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		ActiveSection: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Header: lipgloss.NewStyle().
			Background(background).
			Foreground(text).
			Bold(true).
			Padding(0, 1),
		StatusLine: lipgloss.NewStyle().
			Background(background).
			Foreground(muted).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(muted),
		ErrorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444")),
	}
}
