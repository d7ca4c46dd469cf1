package tui

import "github.com/charmbracelet/lipgloss"

// Styles controls how the list view renders sections and rows
type Styles struct {
	SectionHeader lipgloss.Style
	Row           lipgloss.Style
	FreshRow      lipgloss.Style // rows inserted or updated by the last batch
	EmptyList     lipgloss.Style
}

// DefaultStyles returns the styling the demo uses
func DefaultStyles() Styles {
	return Styles{
		SectionHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginTop(1),
		Row: lipgloss.NewStyle().
			PaddingLeft(2),
		FreshRow: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("42")),
		EmptyList: lipgloss.NewStyle().
			Faint(true).
			Italic(true),
	}
}
