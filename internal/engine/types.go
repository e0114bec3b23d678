// Package engine implements the typing session state machine: word
// progress, per-character scoring, the countdown and statistics.
//
// An Engine is not safe for concurrent use. All calls are expected to come
// from a single serialized event loop (keystrokes and timer ticks).
package engine

import "unicode/utf8"

// Separator is the keystroke that submits the current word.
const Separator = " "

// Status is the lifecycle state of a session.
type Status string

// Session states. Transitions only go idle -> running -> finished.
const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
)

// CharStatus classifies one position of a word.
type CharStatus int

// Character classifications.
const (
	CharPending CharStatus = iota
	CharCorrect
	CharIncorrect
	CharMissed
)

func (c CharStatus) String() string {
	switch c {
	case CharCorrect:
		return "correct"
	case CharIncorrect:
		return "incorrect"
	case CharMissed:
		return "missed"
	default:
		return "pending"
	}
}

// WordStatus is the position of a word relative to the current word.
type WordStatus int

// Word positions.
const (
	WordPending WordStatus = iota
	WordActive
	WordFinished
)

// WordState tracks one target word. Typed is frozen once the word is
// advanced past.
type WordState struct {
	Original  string
	Typed     string
	IsCorrect bool
}

// Stats is a derived scoring snapshot.
type Stats struct {
	WPM            int
	Accuracy       int
	Time           int
	CorrectChars   int
	IncorrectChars int
	MissedChars    int
}

// Snapshot is a read-only copy of the session state for rendering.
type Snapshot struct {
	Words            []WordState
	CurrentWordIndex int
	CurrentTyped     string
	Duration         int
	TimeLeft         int
	Status           Status
}

// WordStatus reports whether word i is finished, active or pending.
func (s Snapshot) WordStatus(i int) WordStatus {
	switch {
	case i < s.CurrentWordIndex:
		return WordFinished
	case i == s.CurrentWordIndex:
		return WordActive
	default:
		return WordPending
	}
}

// Chars classifies every position of word i for display.
func (s Snapshot) Chars(i int) []CharStatus {
	if i < 0 || i >= len(s.Words) {
		return nil
	}
	w := s.Words[i]
	switch s.WordStatus(i) {
	case WordFinished:
		return Classify(w.Original, w.Typed, true)
	case WordActive:
		return Classify(w.Original, s.CurrentTyped, false)
	default:
		return Classify(w.Original, "", false)
	}
}

// Cursor returns the logical cursor position: word index and rune offset
// inside the current input.
func (s Snapshot) Cursor() (word, char int) {
	return s.CurrentWordIndex, utf8.RuneCountInString(s.CurrentTyped)
}
