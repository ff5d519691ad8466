package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/streamwall/internal/model"
)

func exportItems() []model.Item {
	in := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	out := in.Add(90 * time.Minute)
	return []model.Item{
		&model.Stream{ID: "a", Username: "alice", DisplayName: "Alice", ClockInTime: &in, ClockOutTime: &out, Notes: "vip"},
		&model.Group{
			ID: "g", Name: "Favorites", Color: "#22c55e",
			Items: []*model.Stream{
				{ID: "c", Username: "carol", DisplayName: "carol", ClockInTime: &in},
				{ID: "d", Username: "dave", DisplayName: "dave"},
			},
			PreviewCols: 2, ExpandedCols: 3,
		},
		&model.Stream{ID: "b", Username: "bob", DisplayName: "bob"},
	}
}

func TestFlattenOrder(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := Flatten(exportItems(), now)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	want := []struct {
		username string
		group    string
	}{
		{"alice", ""},
		{"carol", "Favorites"},
		{"dave", "Favorites"},
		{"bob", ""},
	}
	for i, w := range want {
		if rows[i].Username != w.username || rows[i].Group != w.group {
			t.Fatalf("row %d = %+v, want %+v", i, rows[i], w)
		}
	}
}

func TestFlattenDurations(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := Flatten(exportItems(), now)

	// alice: stopped, 90 minutes.
	if rows[0].DurationSec != 90*60 {
		t.Fatalf("alice duration = %d", rows[0].DurationSec)
	}
	// carol: still running, measured against now (2h).
	if rows[1].DurationSec != 2*3600 {
		t.Fatalf("carol duration = %d", rows[1].DurationSec)
	}
	// dave: never clocked in.
	if rows[2].DurationSec != 0 {
		t.Fatalf("dave duration = %d", rows[2].DurationSec)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{90 * 60, "01:30:00"},
		{3661, "01:01:01"},
		{25 * 3600, "25:00:00"},
		{-90, "00:00:00"},
	}
	for _, c := range cases {
		if got := formatDuration(c.secs); got != c.want {
			t.Errorf("formatDuration(%d) = %q, want %q", c.secs, got, c.want)
		}
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	if err := ToCSV(exportItems(), path); err != nil {
		t.Fatalf("export csv: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv back: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected header + 4 rows, got %d", len(records))
	}
	if records[0][0] != "Username" || records[0][2] != "Group" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "alice" || records[1][7] != "vip" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][2] != "Favorites" {
		t.Fatalf("grouped row should carry group name: %v", records[2])
	}
	// alice was stopped, so her duration is fixed at 90 minutes.
	if records[1][5] != "5400" || records[1][6] != "01:30:00" {
		t.Fatalf("unexpected alice duration: %v", records[1])
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ToJSON(exportItems(), path); err != nil {
		t.Fatalf("export json: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("parse json back: %v", err)
	}
	if got.Count != 4 || len(got.Streams) != 4 {
		t.Fatalf("count = %d, streams = %d", got.Count, len(got.Streams))
	}
	if got.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
	if got.Streams[0].Username != "alice" || got.Streams[0].DurationSec != 5400 {
		t.Fatalf("unexpected first entry: %+v", got.Streams[0])
	}
	if got.Streams[3].Username != "bob" || got.Streams[3].Group != "" {
		t.Fatalf("unexpected last entry: %+v", got.Streams[3])
	}
}

func TestExportEmpty(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "empty.csv")
	if err := ToCSV(nil, csvPath); err != nil {
		t.Fatal(err)
	}
	f, _ := os.Open(csvPath)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil || len(records) != 1 {
		t.Fatalf("empty export should still write the header: %v %v", records, err)
	}

	jsonPath := filepath.Join(dir, "empty.json")
	if err := ToJSON(nil, jsonPath); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(jsonPath)
	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil || got.Count != 0 {
		t.Fatalf("empty json export: %v %v", got, err)
	}
}
