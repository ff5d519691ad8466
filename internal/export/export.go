package export

import (
	"fmt"
	"time"

	"github.com/sadopc/streamwall/internal/model"
)

// Row is one stream flattened for export, with its owning group (if
// any) resolved.
type Row struct {
	Username    string
	DisplayName string
	Group       string
	ClockIn     *time.Time
	ClockOut    *time.Time
	DurationSec int64
	Notes       string
}

// Flatten walks the collection in display order: top-level streams
// where they sit, then each group's streams inline.
func Flatten(items []model.Item, now time.Time) []Row {
	var rows []Row
	for _, it := range items {
		switch v := it.(type) {
		case *model.Stream:
			rows = append(rows, toRow(v, "", now))
		case *model.Group:
			for _, s := range v.Items {
				rows = append(rows, toRow(s, v.Name, now))
			}
		}
	}
	return rows
}

func toRow(s *model.Stream, group string, now time.Time) Row {
	return Row{
		Username:    s.Username,
		DisplayName: s.DisplayName,
		Group:       group,
		ClockIn:     s.ClockInTime,
		ClockOut:    s.ClockOutTime,
		DurationSec: int64(s.SessionDuration(now).Seconds()),
		Notes:       s.Notes,
	}
}

// formatDuration renders whole seconds as HH:MM:SS. A legacy save can
// carry a clock-out earlier than its clock-in; that reads as zero.
func formatDuration(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
