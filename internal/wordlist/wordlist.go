// Package wordlist provides the word pools tests are dealt from.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words/en.txt
var defaultEnglish string

// Default returns the embedded English word list.
func Default() []string {
	words, _ := readWords(strings.NewReader(defaultEnglish))
	return words
}

// LoadWords reads one word per line from path. Blank lines and entries
// containing whitespace are skipped.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	words, err := readWords(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return Filter(words, SingleToken), nil
}
