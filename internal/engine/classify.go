package engine

import "strings"

// Classify compares typed against original rune by rune. Positions past the
// end of typed are missed when the word is finished and pending otherwise.
// Runes typed beyond the end of original are incorrect.
func Classify(original, typed string, finished bool) []CharStatus {
	target := []rune(original)
	input := []rune(typed)
	n := max(len(target), len(input))
	out := make([]CharStatus, n)
	for i := 0; i < n; i++ {
		switch {
		case i < len(input):
			if i < len(target) && input[i] == target[i] {
				out[i] = CharCorrect
			} else {
				out[i] = CharIncorrect
			}
		case finished:
			out[i] = CharMissed
		default:
			out[i] = CharPending
		}
	}
	return out
}

// SplitWords splits a word source string on the separator, dropping empty
// entries produced by repeated separators.
func SplitWords(text string) []string {
	parts := strings.Split(text, Separator)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		words = append(words, p)
	}
	return words
}
