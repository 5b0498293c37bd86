package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary     = lipgloss.Color("#2196F3")
	muted       = lipgloss.Color("#6b7280")
	destructive = lipgloss.Color("#e53935")
	success     = lipgloss.Color("#8BC34A")
)

type Styles struct {
	Header   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Modal    lipgloss.Style
	Label    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(success),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(destructive),
		Status:   lipgloss.NewStyle().Italic(true).Foreground(muted),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		Label: lipgloss.NewStyle().Bold(true),
	}
}
