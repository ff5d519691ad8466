package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/streamwall/internal/wall"
)

// setupModel is the pre-session screen: a free-form username list,
// optionally prefilled from the previous session's history.
type setupModel struct {
	width  int
	height int

	input   textarea.Model
	history []string
	errText string
}

func newSetupModel(history []string) setupModel {
	ta := textarea.New()
	ta.Placeholder = "alice_wonderland\nbob_builder\ncharlie_stream"
	ta.SetHeight(6)
	ta.Focus()

	return setupModel{
		input:   ta,
		history: history,
	}
}

func (s setupModel) Init() tea.Cmd {
	return textarea.Blink
}

func (s *setupModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.input.SetWidth(min(w-10, 72))
}

func (s setupModel) update(msg tea.Msg) (setupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			names := parseUsernames(s.input.Value())
			if len(names) == 0 {
				s.errText = "Enter at least one username."
				return s, nil
			}
			return s, func() tea.Msg {
				return sessionStartedMsg{items: wall.AddMany(names)}
			}
		case "ctrl+l":
			if len(s.history) == 0 {
				return s, nil
			}
			history := s.history
			return s, func() tea.Msg {
				return sessionStartedMsg{items: wall.AddMany(history)}
			}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s setupModel) view() string {
	title := titleStyle.Render("streamwall")
	subtitle := mutedStyle.Render("Enter usernames to build your wall, separated by spaces, commas or new lines.")

	rows := []string{title, subtitle, "", s.input.View(), ""}

	if s.errText != "" {
		rows = append(rows, errorStyle.Render(s.errText), "")
	}

	hint := "ctrl+s: start"
	if len(s.history) > 0 {
		hint += fmt.Sprintf("  ctrl+l: load last session (%d)", len(s.history))
	}
	hint += "  ctrl+c: quit"
	rows = append(rows, mutedStyle.Render(hint))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	panel := activePanelStyle.Render(content)

	if s.width > 0 && s.height > 0 {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel
}
