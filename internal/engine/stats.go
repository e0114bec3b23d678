package engine

import "math"

// Compute derives Stats from session state. Words after index are ignored;
// the word at index is scored against typed, earlier words against their
// frozen input. Each word before index also earns one correct unit for its
// separator keystroke.
func Compute(words []WordState, index int, typed string, duration, timeLeft int) Stats {
	var correct, incorrect, missed int
	for i, w := range words {
		if i > index {
			break
		}
		input := w.Typed
		if i == index {
			input = typed
		}
		for _, st := range Classify(w.Original, input, i < index) {
			switch st {
			case CharCorrect:
				correct++
			case CharIncorrect:
				incorrect++
			case CharMissed:
				missed++
			}
		}
		if i < index {
			correct++
		}
	}

	elapsed := duration - timeLeft
	minutes := float64(elapsed) / 60.0
	if elapsed <= 0 {
		minutes = 1.0 / 60.0
	}
	wpm := int(math.Round((float64(correct) / 5.0) / minutes))

	accuracy := 0
	if total := correct + incorrect + missed; total > 0 {
		accuracy = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return Stats{
		WPM:            wpm,
		Accuracy:       accuracy,
		Time:           max(elapsed, 0),
		CorrectChars:   correct,
		IncorrectChars: incorrect,
		MissedChars:    missed,
	}
}
