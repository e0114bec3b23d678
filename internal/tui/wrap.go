// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/flowkeys/internal/engine"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func buildStyledRunes(snap engine.Snapshot, th theme, focused bool) []styledRune {
	cursorWord, cursorChar := snap.Cursor()
	showCursor := focused && snap.Status != engine.StatusFinished

	out := make([]styledRune, 0, len(snap.Words)*6)
	for i, w := range snap.Words {
		target := []rune(w.Original)
		typed := []rune(w.Typed)
		active := snap.WordStatus(i) == engine.WordActive
		if active {
			typed = []rune(snap.CurrentTyped)
		}
		for j, status := range snap.Chars(i) {
			var displayed rune
			if j < len(target) {
				displayed = target[j]
			} else {
				displayed = typed[j]
			}
			style := charStyle(th, status, active)
			if !focused {
				style = th.blurred
			}
			if showCursor && i == cursorWord && j == cursorChar {
				style = style.Underline(true)
			}
			out = append(out, newStyledRune(style, displayed, false))
		}
		if i == len(snap.Words)-1 {
			continue
		}
		style := th.pending
		if !focused {
			style = th.blurred
		}
		if showCursor && i == cursorWord && cursorChar >= len(snap.Chars(i)) {
			style = th.cursor
		}
		out = append(out, newStyledRune(style, ' ', true))
	}
	return out
}

func charStyle(th theme, status engine.CharStatus, active bool) lipgloss.Style {
	switch status {
	case engine.CharCorrect:
		return th.correct
	case engine.CharIncorrect:
		return th.incorrect
	case engine.CharMissed:
		return th.missed
	default:
		if active {
			return th.currentWord
		}
		return th.pending
	}
}

func newStyledRune(style lipgloss.Style, r rune, isSpace bool) styledRune {
	return styledRune{
		s:       style.Render(string(r)),
		width:   runewidth.RuneWidth(r),
		isSpace: isSpace,
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines of at most width cells. Lines
// break at separators; a word wider than the line is split.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	var line []styledRune
	lineWidth := 0
	flush := func() {
		lines = append(lines, renderStyledRunes(line))
		line, lineWidth = nil, 0
	}

	for start := 0; start < len(runes); {
		end := start
		for end < len(runes) && !runes[end].isSpace {
			end++
		}
		word := runes[start:end]
		wordWidth := widthOf(word)

		if len(line) > 0 && lineWidth+1+wordWidth > width {
			flush()
		}
		if len(line) > 0 {
			line = append(line, runes[start-1])
			lineWidth++
		}
		for _, r := range word {
			if lineWidth+r.width > width && len(line) > 0 {
				flush()
			}
			line = append(line, r)
			lineWidth += r.width
		}
		start = end + 1
	}
	if len(line) > 0 || len(lines) == 0 {
		flush()
	}
	return strings.Join(lines, "\n")
}

func widthOf(runes []styledRune) int {
	total := 0
	for _, r := range runes {
		total += r.width
	}
	return total
}
