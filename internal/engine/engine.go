package engine

import (
	"strings"
	"sync/atomic"
)

// TimerID identifies one acquisition of the session countdown. Ticks that
// carry an id other than the active one are stale and ignored.
type TimerID uint64

var lastTimerID atomic.Uint64

func nextTimerID() TimerID {
	return TimerID(lastTimerID.Add(1))
}

// Engine owns a single typing session.
type Engine struct {
	words    []WordState
	index    int
	typed    string
	duration int
	timeLeft int
	status   Status

	timer      TimerID
	timerArmed bool

	result    Stats
	hasResult bool
	onFinish  func(Stats)
}

// New returns an idle engine with no words. onFinish, if non-nil, is called
// once per session with the final stats.
func New(onFinish func(Stats)) *Engine {
	e := &Engine{onFinish: onFinish}
	e.Reset(nil, 0)
	return e
}

// Reset starts a new idle session over words and cancels any running timer.
func (e *Engine) Reset(words []string, duration int) {
	e.cancelTimer()
	states := make([]WordState, len(words))
	for i, w := range words {
		states[i] = WordState{Original: w}
	}
	e.words = states
	e.index = 0
	e.typed = ""
	e.duration = duration
	e.timeLeft = duration
	e.status = StatusIdle
	e.result = Stats{}
	e.hasResult = false
}

// Start moves an idle session to running and arms a fresh timer.
func (e *Engine) Start() {
	if e.status != StatusIdle {
		return
	}
	e.status = StatusRunning
	e.timer = nextTimerID()
	e.timerArmed = true
}

// OnKeystroke routes a key event. raw is either the separator or the full
// new value of the input buffer.
func (e *Engine) OnKeystroke(raw string) {
	if e.status == StatusFinished {
		return
	}
	if e.status == StatusIdle {
		e.Start()
	}
	if raw == Separator {
		e.Advance()
		return
	}
	e.ApplyInput(raw)
}

// ApplyInput replaces the in-progress input for the current word. Values
// ending in the separator are ignored; submitting goes through Advance.
func (e *Engine) ApplyInput(value string) {
	if e.status == StatusFinished {
		return
	}
	if e.status == StatusIdle {
		e.Start()
	}
	if strings.HasSuffix(value, Separator) {
		return
	}
	e.typed = value
}

// Advance freezes the current word and moves to the next one. Submitting
// the last word finishes the session.
func (e *Engine) Advance() {
	if e.status == StatusFinished || e.typed == "" {
		return
	}
	if e.index >= len(e.words) {
		return
	}
	w := &e.words[e.index]
	w.Typed = e.typed
	w.IsCorrect = e.typed == w.Original
	if e.index == len(e.words)-1 {
		e.Finish()
		return
	}
	e.index++
	e.typed = ""
}

// Tick applies one second of the countdown. It reports whether the timer is
// still armed, in which case the caller should schedule the next tick.
func (e *Engine) Tick(id TimerID) bool {
	if !e.timerArmed || id != e.timer || e.status != StatusRunning {
		return false
	}
	e.timeLeft--
	if e.timeLeft <= 0 {
		e.timeLeft = 0
		e.Finish()
		return false
	}
	return true
}

// Finish cancels the timer and freezes the final stats. Repeated calls and
// calls on an idle session have no effect.
func (e *Engine) Finish() {
	e.cancelTimer()
	if e.status != StatusRunning {
		return
	}
	e.status = StatusFinished
	stats := Compute(e.words, e.index, e.typed, e.duration, e.timeLeft)
	stats.Time = e.duration
	e.result = stats
	e.hasResult = true
	if e.onFinish != nil {
		e.onFinish(stats)
	}
}

func (e *Engine) cancelTimer() {
	e.timerArmed = false
}

// ActiveTimer returns the armed timer id, if any.
func (e *Engine) ActiveTimer() (TimerID, bool) {
	return e.timer, e.timerArmed
}

// Status returns the session state.
func (e *Engine) Status() Status {
	return e.status
}

// Snapshot returns a copy of the session state.
func (e *Engine) Snapshot() Snapshot {
	words := make([]WordState, len(e.words))
	copy(words, e.words)
	return Snapshot{
		Words:            words,
		CurrentWordIndex: e.index,
		CurrentTyped:     e.typed,
		Duration:         e.duration,
		TimeLeft:         e.timeLeft,
		Status:           e.status,
	}
}

// LiveStats computes stats from the current state.
func (e *Engine) LiveStats() Stats {
	return Compute(e.words, e.index, e.typed, e.duration, e.timeLeft)
}

// Result returns the frozen final stats once the session has finished.
func (e *Engine) Result() (Stats, bool) {
	return e.result, e.hasResult
}
