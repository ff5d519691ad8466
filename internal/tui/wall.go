package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/streamwall/internal/model"
	"github.com/sadopc/streamwall/internal/store"
	"github.com/sadopc/streamwall/internal/wall"
)

// wallModel owns the current item collection. Every user action maps
// to one wall operation; the resulting snapshot replaces the old one
// and is written through to the store.
type wallModel struct {
	store     *store.Store
	viewerURL string
	width     int
	height    int

	items  []model.Item
	cursor int

	// Open group subview; empty when browsing the top level.
	openGroupID string
	groupCursor int

	// Move-to-group picker state.
	picking    bool
	pickCursor int

	formActive bool
	form       *huh.Form
	formType   string // "add", "edit_stream", "edit_group"
	editingID  string

	// Form field pointers (survive value copies)
	formUsername *string
	formName     *string
	formNotes    *string
	formClockIn  *string
	formClockOut *string
	formColor    *string
	formPreview  *int
	formExpanded *int

	// Advanced by the one-second tick; only used to render elapsed
	// time for running streams.
	now time.Time
}

func newWallModel(s *store.Store, viewerURL string) wallModel {
	username, name, notes := "", "", ""
	clockIn, clockOut, color := "", "", ""
	preview, expanded := model.DefaultPreviewCols, model.DefaultExpandedCols
	return wallModel{
		store:        s,
		viewerURL:    viewerURL,
		now:          time.Now(),
		formUsername: &username,
		formName:     &name,
		formNotes:    &notes,
		formClockIn:  &clockIn,
		formClockOut: &clockOut,
		formColor:    &color,
		formPreview:  &preview,
		formExpanded: &expanded,
	}
}

func (w *wallModel) setSize(width, height int) {
	w.width = width
	w.height = height
}

func (w *wallModel) setItems(items []model.Item) {
	w.items = items
	w.cursor = 0
	w.openGroupID = ""
	w.picking = false
}

// apply commits a new snapshot and schedules the storage write.
func (w *wallModel) apply(items []model.Item) tea.Cmd {
	w.items = items
	w.clampCursors()
	return w.persist()
}

func (w *wallModel) persist() tea.Cmd {
	items := w.items
	s := w.store
	return func() tea.Msg {
		var err error
		if len(items) == 0 {
			err = s.ClearSession()
		} else {
			err = s.SaveSession(items)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return nil
	}
}

func (w *wallModel) clampCursors() {
	if w.cursor >= len(w.items) {
		w.cursor = max(0, len(w.items)-1)
	}
	if g := w.openGroup(); g != nil {
		if w.groupCursor >= len(g.Items) {
			w.groupCursor = max(0, len(g.Items)-1)
		}
	} else {
		w.openGroupID = ""
	}
}

func (w *wallModel) openGroup() *model.Group {
	if w.openGroupID == "" {
		return nil
	}
	for _, it := range w.items {
		if g, ok := it.(*model.Group); ok && g.ID == w.openGroupID {
			return g
		}
	}
	return nil
}

func (w *wallModel) currentItem() model.Item {
	if w.cursor < 0 || w.cursor >= len(w.items) {
		return nil
	}
	return w.items[w.cursor]
}

// selectedStream resolves the stream the cursor points at, in either
// the top-level list or the open group.
func (w *wallModel) selectedStream() *model.Stream {
	if g := w.openGroup(); g != nil {
		if w.groupCursor < len(g.Items) {
			return g.Items[w.groupCursor]
		}
		return nil
	}
	s, _ := w.currentItem().(*model.Stream)
	return s
}

func (w wallModel) update(msg tea.Msg) (wallModel, tea.Cmd) {
	if w.formActive && w.form != nil {
		return w.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		w.now = time.Time(msg)
		return w, nil

	case tea.KeyMsg:
		if w.picking {
			return w.updatePicker(msg)
		}
		if w.openGroupID != "" {
			return w.updateGroupView(msg)
		}
		return w.updateList(msg)
	}
	return w, nil
}

func (w wallModel) updateList(msg tea.KeyMsg) (wallModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if w.cursor > 0 {
			w.cursor--
		}
	case key.Matches(msg, keys.Down):
		if w.cursor < len(w.items)-1 {
			w.cursor++
		}

	case key.Matches(msg, keys.MoveUp):
		if w.cursor > 0 {
			target := w.items[w.cursor-1].ItemID()
			dragged := w.items[w.cursor].ItemID()
			w.cursor--
			return w, w.apply(wall.Reorder(w.items, dragged, target))
		}
	case key.Matches(msg, keys.MoveDown):
		if w.cursor < len(w.items)-1 {
			target := w.items[w.cursor+1].ItemID()
			dragged := w.items[w.cursor].ItemID()
			w.cursor++
			return w, w.apply(wall.Reorder(w.items, dragged, target))
		}

	case key.Matches(msg, keys.Enter):
		if g, ok := w.currentItem().(*model.Group); ok {
			w.openGroupID = g.ID
			w.groupCursor = 0
		}

	case key.Matches(msg, keys.Clock):
		if s, ok := w.currentItem().(*model.Stream); ok {
			return w, w.apply(wall.ToggleClock(w.items, s.ID))
		}
	case key.Matches(msg, keys.ResetClock):
		if s, ok := w.currentItem().(*model.Stream); ok {
			return w, w.apply(wall.ResetClock(w.items, s.ID))
		}

	case key.Matches(msg, keys.Add):
		return w.showAddForm()

	case key.Matches(msg, keys.Remove):
		if it := w.currentItem(); it != nil {
			return w, w.apply(wall.Remove(w.items, it.ItemID()))
		}

	case key.Matches(msg, keys.Edit):
		switch it := w.currentItem().(type) {
		case *model.Stream:
			return w.showStreamForm(it)
		case *model.Group:
			return w.showGroupForm(it)
		}

	case key.Matches(msg, keys.NewGroup):
		w.cursor++
		return w, w.apply(wall.CreateGroup(w.items))

	case key.Matches(msg, keys.Move):
		if _, ok := w.currentItem().(*model.Stream); ok {
			if len(w.groups()) == 0 {
				return w, status("No groups yet. Press g to create one.", true)
			}
			w.picking = true
			w.pickCursor = 0
		}

	case key.Matches(msg, keys.Ungroup):
		if g, ok := w.currentItem().(*model.Group); ok {
			return w, w.apply(wall.Ungroup(w.items, g.ID))
		}

	case key.Matches(msg, keys.Viewer):
		if s, ok := w.currentItem().(*model.Stream); ok {
			return w, status(fmt.Sprintf(w.viewerURL, s.Username), false)
		}
	}
	return w, nil
}

func (w wallModel) updateGroupView(msg tea.KeyMsg) (wallModel, tea.Cmd) {
	g := w.openGroup()
	if g == nil {
		w.openGroupID = ""
		return w, nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		w.openGroupID = ""

	case key.Matches(msg, keys.Up):
		if w.groupCursor > 0 {
			w.groupCursor--
		}
	case key.Matches(msg, keys.Down):
		if w.groupCursor < len(g.Items)-1 {
			w.groupCursor++
		}

	case key.Matches(msg, keys.Clock):
		if s := w.selectedStream(); s != nil {
			return w, w.apply(wall.ToggleClock(w.items, s.ID))
		}
	case key.Matches(msg, keys.ResetClock):
		if s := w.selectedStream(); s != nil {
			return w, w.apply(wall.ResetClock(w.items, s.ID))
		}

	case key.Matches(msg, keys.Remove):
		// Removing inside a group demotes the stream back to the
		// top level; it is never deleted from here.
		if s := w.selectedStream(); s != nil {
			return w, w.apply(wall.Remove(w.items, s.ID))
		}

	case key.Matches(msg, keys.Edit):
		if s := w.selectedStream(); s != nil {
			return w.showStreamForm(s)
		}

	case key.Matches(msg, keys.NewGroup):
		return w.showGroupForm(g)

	case key.Matches(msg, keys.Ungroup):
		w.openGroupID = ""
		return w, w.apply(wall.Ungroup(w.items, g.ID))

	case key.Matches(msg, keys.Viewer):
		if s := w.selectedStream(); s != nil {
			return w, status(fmt.Sprintf(w.viewerURL, s.Username), false)
		}
	}
	return w, nil
}

func (w wallModel) updatePicker(msg tea.KeyMsg) (wallModel, tea.Cmd) {
	groups := w.groups()
	switch {
	case key.Matches(msg, keys.Up):
		if w.pickCursor > 0 {
			w.pickCursor--
		}
	case key.Matches(msg, keys.Down):
		if w.pickCursor < len(groups)-1 {
			w.pickCursor++
		}
	case key.Matches(msg, keys.Enter):
		w.picking = false
		if s, ok := w.currentItem().(*model.Stream); ok && w.pickCursor < len(groups) {
			return w, w.apply(wall.MoveToGroup(w.items, s.ID, groups[w.pickCursor].ID))
		}
	case key.Matches(msg, keys.Back):
		w.picking = false
	}
	return w, nil
}

func (w *wallModel) groups() []*model.Group {
	var out []*model.Group
	for _, it := range w.items {
		if g, ok := it.(*model.Group); ok {
			out = append(out, g)
		}
	}
	return out
}

func status(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

// --- Rendering ---

func (w wallModel) view() string {
	if w.formActive && w.form != nil {
		return w.renderForm()
	}
	if w.picking {
		return w.renderPicker()
	}
	if g := w.openGroup(); g != nil {
		return w.renderGroupView(g)
	}
	return w.renderList()
}

func (w wallModel) renderList() string {
	width := w.width - 4
	title := titleStyle.Render("Wall")

	if len(w.items) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Empty wall. Press a to add a stream, Q to end the session."),
		)
		return panelStyle.Width(width).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, it := range w.items {
		cursor := "  "
		style := normalItemStyle
		if i == w.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		switch v := it.(type) {
		case *model.Stream:
			rows = append(rows, cursor+w.renderStreamRow(v, style))
		case *model.Group:
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(v.Color)).Render("■")
			label := fmt.Sprintf("%s %-24s %s", dot, truncate(v.Name, 24),
				mutedStyle.Render(fmt.Sprintf("%d streams", len(v.Items))))
			rows = append(rows, cursor+style.Render(label))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  c: clock  e: edit  a: add  d: remove  g: group  m: move  u: ungroup  J/K: reorder  enter: open"))

	return panelStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func (w wallModel) renderStreamRow(s *model.Stream, style lipgloss.Style) string {
	name := truncate(s.DisplayName, 24)

	var clock string
	switch s.ClockState() {
	case model.ClockRunning:
		clock = successStyle.Render("● " + formatDuration(s.SessionDuration(w.now)))
	case model.ClockStopped:
		clock = mutedStyle.Render("■ " + formatDuration(s.SessionDuration(w.now)))
	default:
		clock = mutedStyle.Render("–")
	}

	note := ""
	if s.Notes != "" {
		note = mutedStyle.Render(" ✎")
	}

	return style.Render(fmt.Sprintf("  %-24s", name)) + " " + clock + note
}

func (w wallModel) renderGroupView(g *model.Group) string {
	width := w.width - 4
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color)).Render("■")
	title := titleStyle.Render(fmt.Sprintf("%s %s", dot, g.Name))
	meta := mutedStyle.Render(fmt.Sprintf("  %d×%d preview, %d×%d expanded",
		g.PreviewCols, g.PreviewCols, g.ExpandedCols, g.ExpandedCols))

	var rows []string
	rows = append(rows, title+meta)
	rows = append(rows, "")

	if len(g.Items) == 0 {
		rows = append(rows, mutedStyle.Render("No streams in this group. Move one here with m from the wall."))
	}

	for i, s := range g.Items {
		cursor := "  "
		style := normalItemStyle
		if i == w.groupCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, cursor+w.renderStreamRow(s, style))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  c: clock  e: edit stream  d: move to wall  g: edit group  u: ungroup  esc: back"))

	return activePanelStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func (w wallModel) renderPicker() string {
	width := w.width - 4
	title := titleStyle.Render("Move to Group")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, g := range w.groups() {
		cursor := "  "
		style := normalItemStyle
		if i == w.pickCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color)).Render("■")
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, dot, g.Name)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: move  esc: cancel"))

	return activePanelStyle.Width(width).Render(strings.Join(rows, "\n"))
}
