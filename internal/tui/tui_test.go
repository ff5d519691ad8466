package tui

import (
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/streamwall/internal/model"
	"github.com/sadopc/streamwall/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// runCmd executes a command synchronously so persistence side effects
// land before assertions.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	return cmd()
}

func wallItems() []model.Item {
	return []model.Item{
		&model.Stream{ID: "a", Username: "alice", DisplayName: "alice"},
		&model.Stream{ID: "b", Username: "bob", DisplayName: "bob"},
		&model.Group{
			ID: "g", Name: "Favorites", Color: model.DefaultGroupColor,
			Items:       []*model.Stream{{ID: "c", Username: "carol", DisplayName: "carol"}},
			PreviewCols: model.DefaultPreviewCols, ExpandedCols: model.DefaultExpandedCols,
		},
	}
}

// ============================================================
// Parsing helpers
// ============================================================

func TestParseUsernames(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"alice", []string{"alice"}},
		{"alice\nbob", []string{"alice", "bob"}},
		{"alice, bob,carol", []string{"alice", "bob", "carol"}},
		{"  alice \t bob \r\n", []string{"alice", "bob"}},
		{"", nil},
		{" , \n ", nil},
	}
	for _, c := range cases {
		got := parseUsernames(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("parseUsernames(%q) = %v, want %v", c.in, got, c.want)
		}
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Fatalf("parseUsernames(%q) = %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestParseClockTime(t *testing.T) {
	got, err := parseClockTime("2024-05-01 10:30")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if got, err := parseClockTime("   "); err != nil || got != nil {
		t.Fatalf("blank should mean absent, got %v %v", got, err)
	}

	if _, err := parseClockTime("yesterday"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFormatClockTimeRoundTrip(t *testing.T) {
	if formatClockTime(nil) != "" {
		t.Fatal("nil should format to blank")
	}
	at := time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)
	s := formatClockTime(&at)
	back, err := parseClockTime(s)
	if err != nil || !back.Equal(at) {
		t.Fatalf("round trip %q -> %v, %v", s, back, err)
	}
}

func TestFormatDurationTUI(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{90 * time.Minute, "01:30:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
		{-time.Hour, "00:00:00"},
	}
	for _, c := range cases {
		if got := formatDuration(c.d); got != c.want {
			t.Errorf("formatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 24); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdefgh", 5); got != "abcd…" {
		t.Fatalf("got %q", got)
	}
	// Multi-byte names are cut on rune boundaries.
	if got := truncate("日本語のテスト", 5); got != "日本語の…" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("日本語", 3); got != "日本語" {
		t.Fatalf("got %q", got)
	}
	if !utf8.ValidString(truncate("🎥🎥🎥🎥", 2)) {
		t.Fatal("truncation produced invalid UTF-8")
	}
}

// ============================================================
// Wall model
// ============================================================

func TestWallClockToggleKey(t *testing.T) {
	s := newTestStore(t)
	w := newWallModel(s, "https://example.com/%s")
	w.setItems(wallItems())

	w, cmd := w.update(keyRune('c'))
	if msg := runCmd(t, cmd); msg != nil {
		if sm, ok := msg.(statusMsg); ok && sm.isError {
			t.Fatalf("persist failed: %v", sm.text)
		}
	}

	if !w.items[0].(*model.Stream).ClockedIn() {
		t.Fatal("alice should be clocked in")
	}

	// The snapshot was written through.
	loaded, _ := s.LoadSession()
	if len(loaded) != 3 || !loaded[0].(*model.Stream).ClockedIn() {
		t.Fatal("clock state should persist")
	}
}

func TestWallReorderKey(t *testing.T) {
	s := newTestStore(t)
	w := newWallModel(s, "")
	w.setItems(wallItems())

	// Shift+J moves the selected item down past its neighbor.
	w, cmd := w.update(keyRune('J'))
	runCmd(t, cmd)

	if w.items[0].ItemID() != "b" || w.items[1].ItemID() != "a" {
		t.Fatalf("order = %v %v", w.items[0].ItemID(), w.items[1].ItemID())
	}
	if w.cursor != 1 {
		t.Fatalf("cursor should follow the moved item, got %d", w.cursor)
	}
}

func TestWallRemoveKeyPersists(t *testing.T) {
	s := newTestStore(t)
	w := newWallModel(s, "")
	w.setItems(wallItems())

	w, cmd := w.update(keyRune('d'))
	runCmd(t, cmd)

	if len(w.items) != 2 || w.items[0].ItemID() != "b" {
		t.Fatalf("alice should be gone: %v", w.items)
	}
	loaded, _ := s.LoadSession()
	if len(loaded) != 2 {
		t.Fatalf("persisted %d items, want 2", len(loaded))
	}
}

func TestWallRemoveLastItemClearsSession(t *testing.T) {
	s := newTestStore(t)
	w := newWallModel(s, "")
	w.setItems([]model.Item{&model.Stream{ID: "a", Username: "alice", DisplayName: "alice"}})
	runCmd(t, w.persist())

	w, cmd := w.update(keyRune('d'))
	runCmd(t, cmd)

	if len(w.items) != 0 {
		t.Fatalf("wall should be empty: %v", w.items)
	}
	if items, _ := s.LoadSession(); items != nil {
		t.Fatalf("session should be cleared, got %v", items)
	}
}

func TestWallCreateGroupKey(t *testing.T) {
	s := newTestStore(t)
	w := newWallModel(s, "")
	w.setItems(wallItems())

	w, cmd := w.update(keyRune('g'))
	runCmd(t, cmd)

	g, ok := w.items[0].(*model.Group)
	if !ok || g.Name != model.DefaultGroupName {
		t.Fatalf("expected new group first, got %v", w.items[0])
	}
	if len(w.items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(w.items))
	}
}

func TestWallGroupViewDemote(t *testing.T) {
	s := newTestStore(t)
	w := newWallModel(s, "")
	w.setItems(wallItems())

	// Open the group, then press d: the stream moves back to the
	// wall instead of being deleted.
	w.cursor = 2
	w, _ = w.update(tea.KeyMsg{Type: tea.KeyEnter})
	if w.openGroupID != "g" {
		t.Fatalf("group should be open, id = %q", w.openGroupID)
	}

	w, cmd := w.update(keyRune('d'))
	runCmd(t, cmd)

	last := w.items[len(w.items)-1]
	if last.ItemID() != "c" {
		t.Fatalf("carol should be demoted to the end: %v", w.items)
	}
	if len(w.openGroup().Items) != 0 {
		t.Fatal("group should be empty")
	}
}

func TestWallMovePickerFlow(t *testing.T) {
	s := newTestStore(t)
	w := newWallModel(s, "")
	w.setItems(wallItems())

	w, _ = w.update(keyRune('m'))
	if !w.picking {
		t.Fatal("picker should be open")
	}

	w, cmd := w.update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, cmd)

	if w.picking {
		t.Fatal("picker should close")
	}
	g := w.items[1].(*model.Group)
	if len(g.Items) != 2 || g.Items[1].ID != "a" {
		t.Fatalf("alice should be in the group: %+v", g.Items)
	}
}

func TestWallMoveWithoutGroups(t *testing.T) {
	s := newTestStore(t)
	w := newWallModel(s, "")
	w.setItems([]model.Item{&model.Stream{ID: "a", Username: "alice", DisplayName: "alice"}})

	w, cmd := w.update(keyRune('m'))
	if w.picking {
		t.Fatal("picker should not open with no groups")
	}
	msg := runCmd(t, cmd)
	if sm, ok := msg.(statusMsg); !ok || !sm.isError {
		t.Fatalf("expected error status, got %v", msg)
	}
}

// ============================================================
// App
// ============================================================

func TestNewAppFreshStart(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s, "")
	if a.started {
		t.Fatal("fresh store should show setup")
	}
}

func TestNewAppRestoresSession(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveSession(wallItems()); err != nil {
		t.Fatal(err)
	}

	a := NewApp(s, "")
	if !a.started {
		t.Fatal("saved session should skip setup")
	}
	if len(a.wall.items) != 3 {
		t.Fatalf("restored %d items, want 3", len(a.wall.items))
	}
}

func TestAppSessionStartedMsg(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s, "")

	m, cmd := a.Update(sessionStartedMsg{items: wallItems()})
	runCmd(t, cmd)
	a = m.(App)

	if !a.started || len(a.wall.items) != 3 {
		t.Fatalf("session should start with 3 items, started=%v", a.started)
	}
	if items, _ := s.LoadSession(); len(items) != 3 {
		t.Fatal("starting a session should persist it")
	}
}

func TestAppEndSessionKeepsHistory(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveSession(wallItems()); err != nil {
		t.Fatal(err)
	}

	a := NewApp(s, "")
	m, _ := a.Update(keyRune('Q'))
	a = m.(App)

	if a.started {
		t.Fatal("ending the session should return to setup")
	}
	items, history := s.LoadSession()
	if items != nil {
		t.Fatalf("session should be cleared, got %v", items)
	}
	if len(history) != 3 {
		t.Fatalf("history = %v, want the 3 usernames", history)
	}
}

func TestAppClockedInCount(t *testing.T) {
	now := time.Now()
	s := newTestStore(t)
	a := NewApp(s, "")
	a.started = true
	a.wall.setItems([]model.Item{
		&model.Stream{ID: "a", Username: "alice", DisplayName: "alice", ClockInTime: &now},
		&model.Group{
			ID: "g", Name: "G", Color: model.DefaultGroupColor,
			Items: []*model.Stream{
				{ID: "c", Username: "carol", DisplayName: "carol", ClockInTime: &now},
				{ID: "d", Username: "dave", DisplayName: "dave"},
			},
			PreviewCols: model.DefaultPreviewCols, ExpandedCols: model.DefaultExpandedCols,
		},
	})

	if n := a.clockedInCount(); n != 2 {
		t.Fatalf("clocked in = %d, want 2", n)
	}
}

func TestAppUsesStoredViewerURL(t *testing.T) {
	s := newTestStore(t)

	// The seeded default stands in for the config value on a fresh
	// store; a saved setting wins over the config default.
	if err := s.SetSetting("viewer_url", "https://example.com/%s"); err != nil {
		t.Fatal(err)
	}
	a := NewApp(s, "https://config.example/%s")
	if a.wall.viewerURL != "https://example.com/%s" {
		t.Fatalf("viewer url = %q", a.wall.viewerURL)
	}
}

func TestAppViewerURLChanged(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s, "")

	m, _ := a.Update(viewerURLChangedMsg{url: "https://other.example/%s"})
	a = m.(App)
	if a.wall.viewerURL != "https://other.example/%s" {
		t.Fatalf("viewer url = %q", a.wall.viewerURL)
	}
}

func TestAppTabSwitching(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveSession(wallItems()); err != nil {
		t.Fatal(err)
	}
	a := NewApp(s, "")

	m, _ := a.Update(keyRune('2'))
	a = m.(App)
	if a.activeView != viewReports {
		t.Fatalf("active view = %v", a.activeView)
	}

	m, _ = a.Update(keyRune('1'))
	a = m.(App)
	if a.activeView != viewWall {
		t.Fatalf("active view = %v", a.activeView)
	}
}
