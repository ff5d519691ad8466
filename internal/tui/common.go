package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/streamwall/internal/model"
)

// viewState represents the currently active view.
type viewState int

const (
	viewWall viewState = iota
	viewReports
	viewSettings
)

var viewNames = []string{"Wall", "Reports", "Settings"}

// clockTimeLayout is the format used for manual clock edits.
const clockTimeLayout = "2006-01-02 15:04"

// --- Messages ---

// sessionStartedMsg carries the bootstrap collection out of the setup
// screen (or out of a restored session).
type sessionStartedMsg struct {
	items []model.Item
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// viewerURLChangedMsg announces a new viewer URL template saved from
// the settings screen.
type viewerURLChangedMsg struct {
	url string
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// parseUsernames splits free-form setup input on newlines, commas and
// whitespace, dropping blanks.
func parseUsernames(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case '\n', '\r', '\t', ',', ' ':
			return true
		}
		return false
	})
}

// parseClockTime converts a form value to a timestamp; blank means
// absent.
func parseClockTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(clockTimeLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatClockTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(clockTimeLayout)
}

// truncate shortens s to n runes; byte slicing would cut multi-byte
// names mid-rune.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
