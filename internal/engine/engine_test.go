package engine

import "testing"

func typeWord(e *Engine, word string) {
	runes := []rune(word)
	for i := range runes {
		e.OnKeystroke(string(runes[:i+1]))
	}
}

func TestResetInitialState(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"one", "two"}, 30)
	snap := e.Snapshot()
	if snap.Status != StatusIdle {
		t.Fatalf("expected idle, got %s", snap.Status)
	}
	if snap.CurrentWordIndex != 0 || snap.CurrentTyped != "" {
		t.Fatalf("unexpected progress: %+v", snap)
	}
	if snap.TimeLeft != 30 || snap.Duration != 30 {
		t.Fatalf("expected 30s left, got %d", snap.TimeLeft)
	}
	for i, w := range snap.Words {
		if w.Typed != "" || w.IsCorrect {
			t.Fatalf("word %d not pristine: %+v", i, w)
		}
	}
	if _, armed := e.ActiveTimer(); armed {
		t.Fatalf("expected no timer before first keystroke")
	}
}

func TestFirstKeystrokeStartsSession(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"one"}, 30)
	e.OnKeystroke("o")
	if e.Status() != StatusRunning {
		t.Fatalf("expected running, got %s", e.Status())
	}
	if _, armed := e.ActiveTimer(); !armed {
		t.Fatalf("expected armed timer")
	}
	if got := e.Snapshot().CurrentTyped; got != "o" {
		t.Fatalf("expected typed %q, got %q", "o", got)
	}
}

func TestStartIsNoOpWhenRunning(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"one"}, 30)
	e.Start()
	id, _ := e.ActiveTimer()
	e.Start()
	again, _ := e.ActiveTimer()
	if id != again {
		t.Fatalf("expected timer to be kept, got %d then %d", id, again)
	}
}

func TestApplyInputSupportsBackspace(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"cat"}, 30)
	e.OnKeystroke("cx")
	e.OnKeystroke("c")
	e.OnKeystroke("ca")
	if got := e.Snapshot().CurrentTyped; got != "ca" {
		t.Fatalf("expected %q, got %q", "ca", got)
	}
}

func TestApplyInputRejectsTrailingSeparator(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"cat", "dog"}, 30)
	e.OnKeystroke("ca")
	e.ApplyInput("cat ")
	snap := e.Snapshot()
	if snap.CurrentTyped != "ca" || snap.CurrentWordIndex != 0 {
		t.Fatalf("expected trailing separator to be ignored, got %+v", snap)
	}
}

func TestEmptySubmitIsIgnored(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"cat", "dog"}, 30)
	e.OnKeystroke(Separator)
	snap := e.Snapshot()
	if snap.CurrentWordIndex != 0 || snap.CurrentTyped != "" {
		t.Fatalf("expected no advance, got %+v", snap)
	}
	typeWord(e, "cat")
	e.OnKeystroke(Separator)
	e.OnKeystroke(Separator)
	snap = e.Snapshot()
	if snap.CurrentWordIndex != 1 || snap.CurrentTyped != "" {
		t.Fatalf("expected single advance, got %+v", snap)
	}
}

func TestAdvanceFreezesWord(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"cat", "dog", "cow"}, 30)
	typeWord(e, "cot")
	e.OnKeystroke(Separator)
	frozen := e.Snapshot().Words[0]
	if frozen.Typed != "cot" || frozen.IsCorrect {
		t.Fatalf("unexpected frozen word: %+v", frozen)
	}
	typeWord(e, "dog")
	e.OnKeystroke(Separator)
	e.Tick(mustTimer(t, e))
	snap := e.Snapshot()
	if snap.Words[0] != frozen {
		t.Fatalf("frozen word changed: %+v", snap.Words[0])
	}
	if !snap.Words[1].IsCorrect {
		t.Fatalf("expected second word correct")
	}
	if snap.Words[2].Typed != "" {
		t.Fatalf("expected pending word to stay empty")
	}
	if got := snap.Chars(0); got[1] != CharIncorrect {
		t.Fatalf("expected incorrect second char, got %v", got)
	}
	if snap.WordStatus(0) != WordFinished || snap.WordStatus(2) != WordActive {
		t.Fatalf("unexpected word statuses")
	}
}

func TestEndToEndLastWordFinishes(t *testing.T) {
	var calls []Stats
	e := New(func(s Stats) { calls = append(calls, s) })
	e.Reset([]string{"abc", "def"}, 10)

	typeWord(e, "abc")
	e.OnKeystroke(Separator)
	typeWord(e, "dxf")
	e.OnKeystroke(Separator)

	if e.Status() != StatusFinished {
		t.Fatalf("expected finished, got %s", e.Status())
	}
	if len(calls) != 1 {
		t.Fatalf("expected one completion callback, got %d", len(calls))
	}
	got := calls[0]
	// abc (3) + separator (1) + d,f (2).
	if got.CorrectChars != 6 || got.IncorrectChars != 1 || got.MissedChars != 0 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.Time != 10 {
		t.Fatalf("expected configured duration as time, got %d", got.Time)
	}
	if got.WPM != 72 {
		t.Fatalf("expected 72 wpm, got %d", got.WPM)
	}
	if got.Accuracy != 86 {
		t.Fatalf("expected 86 accuracy, got %d", got.Accuracy)
	}
	result, ok := e.Result()
	if !ok || result != got {
		t.Fatalf("expected frozen result %+v, got %+v", got, result)
	}
	if _, armed := e.ActiveTimer(); armed {
		t.Fatalf("expected timer cancelled")
	}
}

func TestTimeoutFinishes(t *testing.T) {
	var calls int
	e := New(func(Stats) { calls++ })
	e.Reset([]string{"alpha", "beta"}, 5)
	e.Start()
	id := mustTimer(t, e)
	for i := 0; i < 4; i++ {
		if !e.Tick(id) {
			t.Fatalf("expected timer armed after tick %d", i+1)
		}
	}
	if e.Tick(id) {
		t.Fatalf("expected timer disarmed after final tick")
	}
	if e.Status() != StatusFinished {
		t.Fatalf("expected finished, got %s", e.Status())
	}
	result, ok := e.Result()
	if !ok {
		t.Fatalf("expected result")
	}
	if result.Time != 5 || result.WPM != 0 || result.Accuracy != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if e.Snapshot().TimeLeft != 0 {
		t.Fatalf("expected no time left")
	}
	e.Tick(id)
	if calls != 1 {
		t.Fatalf("expected one completion callback, got %d", calls)
	}
}

func TestFinishIsIdempotent(t *testing.T) {
	var calls int
	e := New(func(Stats) { calls++ })
	e.Reset([]string{"abc", "def"}, 30)
	typeWord(e, "ab")
	e.Tick(mustTimer(t, e))
	e.Finish()
	first, _ := e.Result()
	e.Finish()
	second, _ := e.Result()
	if first != second {
		t.Fatalf("expected identical stats, got %+v and %+v", first, second)
	}
	if calls != 1 {
		t.Fatalf("expected one completion callback, got %d", calls)
	}
}

func TestFinishWhileIdleIsNoOp(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"abc"}, 30)
	e.Finish()
	if e.Status() != StatusIdle {
		t.Fatalf("expected idle, got %s", e.Status())
	}
	if _, ok := e.Result(); ok {
		t.Fatalf("expected no result")
	}
}

func TestInputAfterFinishIgnored(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"abc"}, 30)
	typeWord(e, "abc")
	e.OnKeystroke(Separator)
	before := e.Snapshot()
	e.OnKeystroke("zzz")
	e.OnKeystroke(Separator)
	after := e.Snapshot()
	if after.CurrentTyped != before.CurrentTyped || after.CurrentWordIndex != before.CurrentWordIndex {
		t.Fatalf("expected no change after finish")
	}
}

func TestStaleTickAfterReset(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"abc"}, 30)
	e.Start()
	stale := mustTimer(t, e)
	e.Reset([]string{"xyz"}, 15)
	if e.Tick(stale) {
		t.Fatalf("expected stale tick to be ignored")
	}
	if got := e.Snapshot().TimeLeft; got != 15 {
		t.Fatalf("expected 15s left, got %d", got)
	}
	e.Start()
	fresh := mustTimer(t, e)
	if fresh == stale {
		t.Fatalf("expected fresh timer id")
	}
	if e.Tick(stale) {
		t.Fatalf("expected stale tick to be ignored while running")
	}
	if !e.Tick(fresh) || e.Snapshot().TimeLeft != 14 {
		t.Fatalf("expected fresh tick to count down")
	}
}

func TestMonotonicProgress(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"a", "b", "c", "d"}, 20)
	prevIndex, prevLeft := 0, 20
	steps := []string{"a", Separator, "x", "", "b", Separator, "c", Separator}
	for _, step := range steps {
		e.OnKeystroke(step)
		if id, armed := e.ActiveTimer(); armed {
			e.Tick(id)
		}
		snap := e.Snapshot()
		if snap.CurrentWordIndex < prevIndex {
			t.Fatalf("word index decreased: %d -> %d", prevIndex, snap.CurrentWordIndex)
		}
		if snap.TimeLeft > prevLeft {
			t.Fatalf("time left increased: %d -> %d", prevLeft, snap.TimeLeft)
		}
		prevIndex, prevLeft = snap.CurrentWordIndex, snap.TimeLeft
	}
	if prevIndex != 3 {
		t.Fatalf("expected index 3, got %d", prevIndex)
	}
}

func TestLiveStatsDuringRun(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"hello", "world"}, 60)
	typeWord(e, "hello")
	e.OnKeystroke(Separator)
	id := mustTimer(t, e)
	for i := 0; i < 6; i++ {
		e.Tick(id)
	}
	live := e.LiveStats()
	if live.CorrectChars != 6 || live.Time != 6 {
		t.Fatalf("unexpected live stats: %+v", live)
	}
	// 6 chars in 0.1 minute.
	if live.WPM != 12 {
		t.Fatalf("expected 12 wpm, got %d", live.WPM)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"abc"}, 30)
	snap := e.Snapshot()
	snap.Words[0].Typed = "mutated"
	if e.Snapshot().Words[0].Typed != "" {
		t.Fatalf("snapshot mutation leaked into engine")
	}
}

func TestCursor(t *testing.T) {
	e := New(nil)
	e.Reset([]string{"añb", "c"}, 30)
	e.OnKeystroke("añ")
	word, char := e.Snapshot().Cursor()
	if word != 0 || char != 2 {
		t.Fatalf("expected cursor (0,2), got (%d,%d)", word, char)
	}
}

func TestEmptyWordList(t *testing.T) {
	e := New(nil)
	e.Reset(nil, 5)
	e.OnKeystroke("a")
	e.OnKeystroke(Separator)
	if e.Status() != StatusRunning {
		t.Fatalf("expected running, got %s", e.Status())
	}
	if got := e.Snapshot().CurrentWordIndex; got != 0 {
		t.Fatalf("expected index 0, got %d", got)
	}
}

func mustTimer(t *testing.T, e *Engine) TimerID {
	t.Helper()
	id, ok := e.ActiveTimer()
	if !ok {
		t.Fatalf("expected armed timer")
	}
	return id
}
