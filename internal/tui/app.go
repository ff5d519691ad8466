package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/streamwall/internal/export"
	"github.com/sadopc/streamwall/internal/model"
	"github.com/sadopc/streamwall/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	// started is false while the setup screen is shown.
	started bool

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	setup    setupModel
	wall     wallModel
	reports  reportsModel
	settings settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, viewerURL string) App {
	h := help.New()
	h.ShowAll = false

	// A viewer URL saved from the settings screen wins over the
	// config default.
	if v, err := s.GetSetting("viewer_url"); err == nil && v != "" {
		viewerURL = v
	}

	a := App{
		store:      s,
		activeView: viewWall,
		wall:       newWallModel(s, viewerURL),
		reports:    newReportsModel(),
		settings:   newSettingsModel(s),
		help:       h,
	}

	// Restore the previous session if one was saved; otherwise show
	// the setup screen prefilled from the username history.
	items, history := s.LoadSession()
	if len(items) > 0 {
		a.started = true
		a.wall.setItems(items)
	} else {
		a.setup = newSetupModel(history)
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if !a.started {
		cmds = append(cmds, a.setup.Init())
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.setup.setSize(a.width, a.height)
		a.wall.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tickMsg:
		var cmd tea.Cmd
		a.wall, cmd = a.wall.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case sessionStartedMsg:
		a.started = true
		a.activeView = viewWall
		a.wall.setItems(msg.items)
		a.status = fmt.Sprintf("Session started with %d streams", len(msg.items))
		return a, a.wall.persist()

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil

	case viewerURLChangedMsg:
		a.wall.viewerURL = msg.url
		return a, nil

	case tea.KeyMsg:
		if !a.started {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.setup, cmd = a.setup.update(msg)
			return a, cmd
		}

		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.EndSession):
			return a.endSession()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewWall
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewReports
			a.reports.setItems(a.wall.items)
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 3
			if a.activeView == viewReports {
				a.reports.setItems(a.wall.items)
			}
			if a.activeView == viewSettings {
				return a, a.settings.refresh()
			}
			return a, nil
		}
	}

	return a.updateActiveView(msg)
}

// endSession clears the stored wall and returns to setup; the
// username history survives so the next session can start from it.
func (a App) endSession() (tea.Model, tea.Cmd) {
	if err := a.store.ClearSession(); err != nil {
		a.status = fmt.Sprintf("Clear error: %v", err)
		return a, nil
	}
	_, history := a.store.LoadSession()
	a.started = false
	a.status = ""
	a.wall.setItems(nil)
	a.setup = newSetupModel(history)
	a.setup.setSize(a.width, a.height)
	return a, a.setup.Init()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewWall:
		a.wall, cmd = a.wall.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewWall:
		return a.wall.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if !a.started {
		return a.setup.view()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewWall:
		content = a.wall.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("streamwall")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Clocked-in indicator in footer
	clockInfo := ""
	if n := a.clockedInCount(); n > 0 {
		clockInfo = successStyle.Render(fmt.Sprintf(" ● %d clocked in", n))
	}

	left := footerStyle.Render(helpView)
	right := clockInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) clockedInCount() int {
	n := 0
	for _, it := range a.wall.items {
		switch v := it.(type) {
		case *model.Stream:
			if v.ClockedIn() {
				n++
			}
		case *model.Group:
			for _, s := range v.Items {
				if s.ClockedIn() {
					n++
				}
			}
		}
	}
	return n
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	items := a.wall.items
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("streamwall-export-%s.csv", dateStr))
			if err := export.ToCSV(items, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("streamwall-export-%s.json", dateStr))
			if err := export.ToJSON(items, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
