package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RefreshMsg tells the model the list view's content changed and the
// viewport must re-render
type RefreshMsg struct{}

// KeyMap holds the scrolling and quit bindings
type KeyMap struct {
	Quit key.Binding
}

// DefaultKeyMap returns the standard bindings; the viewport carries its
// own scrolling keys
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the bubbletea wrapper around a ListView: a scrollable
// viewport over the rendered list plus a title and a key hint line
type Model struct {
	Title string

	view     *ListView
	viewport viewport.Model
	keys     KeyMap
	ready    bool
}

// NewModel wraps a list view for use in a bubbletea program
func NewModel(view *ListView) Model {
	return Model{
		Title: "listbind",
		view:  view,
		keys:  DefaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(m.view.Render())
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	case RefreshMsg:
		if m.ready {
			m.viewport.SetContent(m.view.Render())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	title := lipgloss.NewStyle().Bold(true).Render(m.Title)
	footer := lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("%d sections · q to quit", m.view.SectionCount()))
	return title + "\n\n" + m.viewport.View() + "\n" + footer
}
