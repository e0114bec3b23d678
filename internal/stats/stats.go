// Package stats renders typing test results.
package stats

import "math"

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// MovingAverage returns the mean of each value and up to window-1 values
// before it.
func MovingAverage(values []float64, window int) []float64 {
	window = max(window, 1)
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders values as a row of block glyphs scaled between their
// minimum and maximum.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	top := len(sparkRunes) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		idx := top / 2
		if hi-lo > 1e-9 {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}
