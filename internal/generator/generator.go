// Package generator builds word sequences for a typing test.
package generator

import (
	"math/rand"
	"time"
	"unicode"
	"unicode/utf8"
)

// Options controls optional variation applied to each generated word.
type Options struct {
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// Generator produces randomized word sequences.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate selects count words uniformly with replacement.
func (g *Generator) Generate(words []string, count int, opts Options) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, count)
	for i := range result {
		result[i] = g.vary(words[g.rnd.Intn(len(words))], opts)
	}
	return result
}

// vary capitalizes the first rune and appends one punctuation rune, each
// with its configured probability.
func (g *Generator) vary(word string, opts Options) string {
	if word == "" {
		return word
	}
	if opts.CapsPct > 0 && g.rnd.Float64() < opts.CapsPct {
		r, size := utf8.DecodeRuneInString(word)
		word = string(unicode.ToUpper(r)) + word[size:]
	}
	if opts.PunctPct > 0 && len(opts.PunctSet) > 0 && g.rnd.Float64() < opts.PunctPct {
		word += string(opts.PunctSet[g.rnd.Intn(len(opts.PunctSet))])
	}
	return word
}
