package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/flowkeys/internal/engine"
)

// ReportRows returns label/value pairs for a result.
func ReportRows(s engine.Stats) [][]string {
	return [][]string{
		{"WPM", fmt.Sprintf("%d", s.WPM)},
		{"Accuracy", fmt.Sprintf("%d%%", s.Accuracy)},
		{"Time", fmt.Sprintf("%ds", s.Time)},
		{"Correct", fmt.Sprintf("%d", s.CorrectChars)},
		{"Incorrect", fmt.Sprintf("%d", s.IncorrectChars)},
		{"Missed", fmt.Sprintf("%d", s.MissedChars)},
	}
}

// RenderReport prints a result as an aligned table.
func RenderReport(w io.Writer, s engine.Stats) error {
	lines := formatTable([]string{"Metric", "Value"}, ReportRows(s), map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
