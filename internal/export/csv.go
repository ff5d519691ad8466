package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/streamwall/internal/model"
)

func ToCSV(items []model.Item, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Username", "Display Name", "Group", "Clock In", "Clock Out", "Duration (s)", "Duration", "Notes"}); err != nil {
		return err
	}

	now := time.Now()
	for _, r := range Flatten(items, now) {
		inStr, outStr := "", ""
		if r.ClockIn != nil {
			inStr = r.ClockIn.Local().Format(time.RFC3339)
		}
		if r.ClockOut != nil {
			outStr = r.ClockOut.Local().Format(time.RFC3339)
		}

		row := []string{
			r.Username,
			r.DisplayName,
			r.Group,
			inStr,
			outStr,
			fmt.Sprintf("%d", r.DurationSec),
			formatDuration(r.DurationSec),
			r.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
