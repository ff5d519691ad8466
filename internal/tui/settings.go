package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/streamwall/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	gridColumns *string
	viewerURL   *string
}

func newSettingsModel(s *store.Store) settingsModel {
	gc, vu := "", ""
	return settingsModel{
		store:       s,
		gridColumns: &gc,
		viewerURL:   &vu,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.gridColumns = s.getVal("grid_columns", "3")
	*s.viewerURL = s.getVal("viewer_url", "https://chaturbate.com/%s/")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Wall columns (1-6)").Value(s.gridColumns).
				Validate(func(v string) error {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil || n < 1 || n > 6 {
						return fmt.Errorf("enter a number between 1 and 6")
					}
					return nil
				}),
			huh.NewInput().Title("Viewer URL (%s = username)").Value(s.viewerURL).
				Validate(func(v string) error {
					if !strings.Contains(v, "%s") {
						return fmt.Errorf("must contain %%s for the username")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.store.SetSetting("grid_columns", strings.TrimSpace(*s.gridColumns))
		url := strings.TrimSpace(*s.viewerURL)
		s.store.SetSetting("viewer_url", url)
		return s, tea.Batch(s.refresh(), func() tea.Msg {
			return viewerURLChangedMsg{url: url}
		})
	}

	return s, cmd
}

func (s settingsModel) getVal(key, fallback string) string {
	for _, st := range s.settings {
		if st.Key == key {
			return st.Value
		}
	}
	return fallback
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Edit Settings")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	if len(s.settings) == 0 {
		rows = append(rows, mutedStyle.Render("No settings stored."))
	}
	for _, st := range s.settings {
		rows = append(rows, fmt.Sprintf("  %-20s %s", st.Key, highlightStyle.Render(st.Value)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
