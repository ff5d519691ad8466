package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/streamwall/internal/model"
	"github.com/sadopc/streamwall/internal/wall"
)

func (w wallModel) showAddForm() (wallModel, tea.Cmd) {
	*w.formUsername = ""
	w.formType = "add"

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(w.formUsername),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w wallModel) showStreamForm(s *model.Stream) (wallModel, tea.Cmd) {
	*w.formName = s.DisplayName
	*w.formNotes = s.Notes
	*w.formClockIn = formatClockTime(s.ClockInTime)
	*w.formClockOut = formatClockTime(s.ClockOutTime)
	w.formType = "edit_stream"
	w.editingID = s.ID

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Display Name").Value(w.formName),
			huh.NewText().Title("Notes").Value(w.formNotes),
			huh.NewInput().Title("Clock In (YYYY-MM-DD HH:MM, blank = none)").Value(w.formClockIn),
			huh.NewInput().Title("Clock Out (YYYY-MM-DD HH:MM, blank = none)").Value(w.formClockOut),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w wallModel) showGroupForm(g *model.Group) (wallModel, tea.Cmd) {
	*w.formName = g.Name
	*w.formColor = g.Color
	*w.formPreview = g.PreviewCols
	*w.formExpanded = g.ExpandedCols
	w.formType = "edit_group"
	w.editingID = g.ID

	colorOptions := make([]huh.Option[string], len(model.GroupColors))
	for i, c := range model.GroupColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("■ %s", c), c)
	}
	colOptions := func(vals ...int) []huh.Option[int] {
		opts := make([]huh.Option[int], len(vals))
		for i, v := range vals {
			opts[i] = huh.NewOption(fmt.Sprintf("%d", v), v)
		}
		return opts
	}

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Group Name").Value(w.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(w.formColor),
			huh.NewSelect[int]().Title("Preview Columns").Options(colOptions(1, 2, 3)...).Value(w.formPreview),
			huh.NewSelect[int]().Title("Expanded Columns").Options(colOptions(1, 2, 3, 4)...).Value(w.formExpanded),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w wallModel) updateForm(msg tea.Msg) (wallModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			w.formActive = false
			w.form = nil
			return w, nil
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.formActive = false
		switch w.formType {
		case "add":
			username := strings.TrimSpace(*w.formUsername)
			if username == "" {
				return w, nil
			}
			return w, w.apply(wall.AddOne(w.items, username))

		case "edit_stream":
			return w.applyStreamForm()

		case "edit_group":
			return w.applyGroupForm()
		}
	}

	return w, cmd
}

// applyStreamForm validates the whole edit before touching the
// collection; an invalid time range leaves the prior state intact.
func (w wallModel) applyStreamForm() (wallModel, tea.Cmd) {
	clockIn, err := parseClockTime(*w.formClockIn)
	if err != nil {
		return w, status(fmt.Sprintf("Invalid clock-in time: %v", err), true)
	}
	clockOut, err := parseClockTime(*w.formClockOut)
	if err != nil {
		return w, status(fmt.Sprintf("Invalid clock-out time: %v", err), true)
	}

	items, err := wall.SetTimes(w.items, w.editingID, clockIn, clockOut)
	if err != nil {
		return w, status("Clock out time cannot be before clock in time.", true)
	}

	if name := strings.TrimSpace(*w.formName); name != "" {
		items = wall.SetDisplayName(items, w.editingID, name)
	}
	items = wall.SetNotes(items, w.editingID, *w.formNotes)

	return w, w.apply(items)
}

func (w wallModel) applyGroupForm() (wallModel, tea.Cmd) {
	patch := wall.GroupPatch{
		Color:        w.formColor,
		PreviewCols:  w.formPreview,
		ExpandedCols: w.formExpanded,
	}
	// A blank rename is dropped; the prior name stays.
	if name := strings.TrimSpace(*w.formName); name != "" {
		patch.Name = &name
	}
	return w, w.apply(wall.UpdateGroup(w.items, w.editingID, patch))
}

func (w wallModel) renderForm() string {
	var title string
	switch w.formType {
	case "add":
		title = titleStyle.Render("Add Stream")
	case "edit_stream":
		title = titleStyle.Render("Edit Stream")
	case "edit_group":
		title = titleStyle.Render("Edit Group")
	}
	formView := w.form.View()
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
	return panelStyle.Width(w.width - 4).Render(content)
}
