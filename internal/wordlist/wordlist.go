// Package wordlist normalizes raw word lists into deduplicated sets.
package wordlist

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Tokens shorter or longer than these bounds never enter a Set.
const (
	MinWordLen = 2
	MaxWordLen = 9
)

// Set holds unique normalized words.
type Set map[string]struct{}

// Contains reports whether the set holds the given word.
func (s Set) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Add inserts a word; duplicates collapse silently.
func (s Set) Add(word string) {
	s[word] = struct{}{}
}

// Normalize trims and uppercases a raw line. The second return value is
// false when the result falls outside the accepted length range and the
// line must be discarded.
func Normalize(line string) (string, bool) {
	word := strings.ToUpper(strings.TrimSpace(line))
	length := utf8.RuneCountInString(word)
	if length < MinWordLen || length > MaxWordLen {
		return "", false
	}
	return word, true
}

// ReadSet consumes one word per line from r and returns the normalized,
// deduplicated set. Blank and out-of-range lines yield no token; lines
// of any length are length-filtered rather than treated as errors.
func ReadSet(r io.Reader) (Set, error) {
	set := make(Set)
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if word, ok := Normalize(line); ok {
			set.Add(word)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return set, nil
			}
			return nil, err
		}
	}
}

// ReadSetFile reads a word list from the given file path.
func ReadSetFile(path string) (Set, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return ReadSet(file)
}
