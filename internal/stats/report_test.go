package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/flowkeys/internal/engine"
)

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	err := RenderReport(&buf, engine.Stats{
		WPM:            72,
		Accuracy:       86,
		Time:           10,
		CorrectChars:   6,
		IncorrectChars: 1,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "Metric    Value" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "WPM          72" {
		t.Fatalf("unexpected wpm line: %q", lines[1])
	}
	if lines[2] != "Accuracy    86%" {
		t.Fatalf("unexpected accuracy line: %q", lines[2])
	}
	if lines[6] != "Missed        0" {
		t.Fatalf("unexpected missed line: %q", lines[6])
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}); got != "▄▄▄" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
}

func TestSparklineRange(t *testing.T) {
	got := Sparkline([]float64{0, 50, 100})
	if got != "▁▅█" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if got := MovingAverage([]float64{5}, 0); got[0] != 5 {
		t.Fatalf("expected window clamp, got %v", got)
	}
}
