package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/streamwall/internal/export"
	"github.com/sadopc/streamwall/internal/model"
)

// reportsModel charts tracked session time per stream for the current
// wall snapshot.
type reportsModel struct {
	width  int
	height int

	rows  []export.Row
	chart barchart.Model
}

func newReportsModel() reportsModel {
	return reportsModel{
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r *reportsModel) setItems(items []model.Item) {
	r.rows = export.Flatten(items, time.Now())
	r.buildChart(items)
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	return r, nil
}

func (r *reportsModel) buildChart(items []model.Item) {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	// One bar per stream, colored by its owning group.
	now := time.Now()
	var bars []barchart.BarData
	addBar := func(s *model.Stream, color string) {
		hours := s.SessionDuration(now).Hours()
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		bars = append(bars, barchart.BarData{
			Label: truncate(s.Username, 8),
			Values: []barchart.BarValue{
				{Name: s.DisplayName, Value: hours, Style: style},
			},
		})
	}
	for _, it := range items {
		switch v := it.(type) {
		case *model.Stream:
			addBar(v, string(colorPrimary))
		case *model.Group:
			for _, s := range v.Items {
				addBar(s, v.Color)
			}
		}
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ",
		mutedStyle.Render("tracked time per stream"),
	)

	if len(r.rows) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "",
				mutedStyle.Render("No streams on the wall.")),
		)
	}

	chartView := r.chart.View()
	tableView := r.renderTable(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", chartView, "", tableView),
	)
}

func (r reportsModel) renderTable(w int) string {
	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-20s %-16s %10s", "Stream", "Group", "Duration"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 48))))

	for _, row := range r.rows {
		group := row.Group
		if group == "" {
			group = "—"
		}
		rows = append(rows, fmt.Sprintf("  %-20s %-16s %10s",
			truncate(row.DisplayName, 20), truncate(group, 16),
			formatDuration(time.Duration(row.DurationSec)*time.Second),
		))
	}

	return strings.Join(rows, "\n")
}
