// Package replay drives the session engine from a keystroke script without a
// terminal. A script is one directive per line:
//
//	words abc def      target words
//	duration 10        seconds
//	type abc           one keystroke per rune, a space submits the word
//	backspace [n]      delete n runes (default 1)
//	space              submit the current word
//	tick [n]           n timer ticks (default 1)
//	finish             end the session
//
// Blank lines and lines starting with # are ignored.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/flowkeys/internal/engine"
)

// Kind names a script directive.
type Kind string

// Directives that act on the engine.
const (
	KindType      Kind = "type"
	KindBackspace Kind = "backspace"
	KindSpace     Kind = "space"
	KindTick      Kind = "tick"
	KindFinish    Kind = "finish"
)

const defaultDuration = 30

// Step is one engine-facing directive.
type Step struct {
	Kind  Kind
	Text  string
	Count int
	Line  int
}

// Script is a parsed replay file.
type Script struct {
	Words    []string
	Duration int
	Steps    []Step
}

// Result is the outcome of running a script.
type Result struct {
	Stats    engine.Stats
	Finished bool
	Snapshot engine.Snapshot
}

// Parse reads a script.
func Parse(r io.Reader) (Script, error) {
	script := Script{Duration: defaultDuration}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		directive, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		switch directive {
		case "words":
			script.Words = engine.SplitWords(rest)
		case "duration":
			n, err := strconv.Atoi(rest)
			if err != nil || n <= 0 {
				return Script{}, fmt.Errorf("line %d: duration must be a positive integer", lineNo)
			}
			script.Duration = n
		case string(KindType):
			if rest == "" {
				return Script{}, fmt.Errorf("line %d: type needs text", lineNo)
			}
			// Keep inner spaces; they are separator keystrokes.
			text := strings.TrimPrefix(strings.TrimLeft(scanner.Text(), " \t"), directive+" ")
			script.Steps = append(script.Steps, Step{Kind: KindType, Text: text, Line: lineNo})
		case string(KindBackspace), string(KindTick):
			count, err := parseCount(rest)
			if err != nil {
				return Script{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			script.Steps = append(script.Steps, Step{Kind: Kind(directive), Count: count, Line: lineNo})
		case string(KindSpace), string(KindFinish):
			if rest != "" {
				return Script{}, fmt.Errorf("line %d: %s takes no arguments", lineNo, directive)
			}
			script.Steps = append(script.Steps, Step{Kind: Kind(directive), Line: lineNo})
		default:
			return Script{}, fmt.Errorf("line %d: unknown directive %q", lineNo, directive)
		}
	}
	if err := scanner.Err(); err != nil {
		return Script{}, fmt.Errorf("failed to read script: %w", err)
	}
	if len(script.Words) == 0 {
		return Script{}, fmt.Errorf("script has no words")
	}
	return script, nil
}

func parseCount(arg string) (int, error) {
	if arg == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("count must be a positive integer")
	}
	return n, nil
}

// Run resets a fresh engine with the script's words and applies every step
// the way the interactive UI would.
func Run(script Script) Result {
	var final *engine.Stats
	e := engine.New(func(s engine.Stats) { final = &s })
	e.Reset(script.Words, script.Duration)

	buf := ""
	for _, step := range script.Steps {
		switch step.Kind {
		case KindType:
			for _, r := range step.Text {
				if string(r) == engine.Separator {
					e.OnKeystroke(engine.Separator)
				} else {
					e.OnKeystroke(buf + string(r))
				}
				buf = e.Snapshot().CurrentTyped
			}
		case KindBackspace:
			for i := 0; i < step.Count; i++ {
				runes := []rune(buf)
				// An empty buffer is unchanged by backspace and never
				// reaches the engine.
				if len(runes) == 0 {
					continue
				}
				e.OnKeystroke(string(runes[:len(runes)-1]))
				buf = e.Snapshot().CurrentTyped
			}
		case KindSpace:
			e.OnKeystroke(engine.Separator)
			buf = e.Snapshot().CurrentTyped
		case KindTick:
			for i := 0; i < step.Count; i++ {
				id, armed := e.ActiveTimer()
				if !armed {
					break
				}
				e.Tick(id)
			}
		case KindFinish:
			e.Finish()
		}
	}

	res := Result{Snapshot: e.Snapshot()}
	if final != nil {
		res.Stats = *final
		res.Finished = true
		return res
	}
	res.Stats = e.LiveStats()
	return res
}
