package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/streamwall/internal/model"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Streams    []jsonEntry `json:"streams"`
}

type jsonEntry struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Group       string `json:"group,omitempty"`
	ClockIn     string `json:"clock_in,omitempty"`
	ClockOut    string `json:"clock_out,omitempty"`
	DurationSec int64  `json:"duration_seconds"`
	Duration    string `json:"duration"`
	Notes       string `json:"notes,omitempty"`
}

func ToJSON(items []model.Item, path string) error {
	now := time.Now()
	rows := Flatten(items, now)

	export := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(rows),
	}

	for _, r := range rows {
		inStr, outStr := "", ""
		if r.ClockIn != nil {
			inStr = r.ClockIn.Local().Format(time.RFC3339)
		}
		if r.ClockOut != nil {
			outStr = r.ClockOut.Local().Format(time.RFC3339)
		}

		export.Streams = append(export.Streams, jsonEntry{
			Username:    r.Username,
			DisplayName: r.DisplayName,
			Group:       r.Group,
			ClockIn:     inStr,
			ClockOut:    outStr,
			DurationSec: r.DurationSec,
			Duration:    formatDuration(r.DurationSec),
			Notes:       r.Notes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
