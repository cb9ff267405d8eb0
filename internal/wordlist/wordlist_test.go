package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeBounds(t *testing.T) {
	cases := []struct {
		line string
		want string
		ok   bool
	}{
		{"  cat \n", "CAT", true},
		{"ab", "AB", true},
		{"wordsmith", "WORDSMITH", true},
		{"a", "", false},
		{"dictionary", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.line)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Normalize(%q) = %q, %v; want %q, %v", tc.line, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first, ok := Normalize(" hello ")
	if !ok {
		t.Fatalf("expected hello to normalize")
	}
	second, ok := Normalize(first)
	if !ok || second != first {
		t.Fatalf("expected normalization to be idempotent, got %q then %q", first, second)
	}
}

func TestReadSetDeduplicates(t *testing.T) {
	input := "cat\nCAT\n Cat \ndog\n\nx\nsupercalifragilistic\n"
	set, err := ReadSet(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSet failed: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 words, got %d: %v", len(set), set)
	}
	for _, word := range []string{"CAT", "DOG"} {
		if !set.Contains(word) {
			t.Fatalf("expected set to contain %q", word)
		}
	}
}

func TestReadSetOversizedLine(t *testing.T) {
	// Lines beyond bufio.Scanner's default token limit must be
	// length-filtered out like any other over-long word, not abort
	// the read.
	input := strings.Repeat("x", 100*1024) + "\ncat\n"
	set, err := ReadSet(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSet failed: %v", err)
	}
	if len(set) != 1 || !set.Contains("CAT") {
		t.Fatalf("expected {CAT}, got %v", set)
	}
}

func TestReadSetNoTrailingNewline(t *testing.T) {
	set, err := ReadSet(strings.NewReader("cat\ndog"))
	if err != nil {
		t.Fatalf("ReadSet failed: %v", err)
	}
	if len(set) != 2 || !set.Contains("DOG") {
		t.Fatalf("expected {CAT, DOG}, got %v", set)
	}
}

func TestReadSetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidate.txt")
	if err := os.WriteFile(path, []byte("cat\ndog\ncat\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	set, err := ReadSetFile(path)
	if err != nil {
		t.Fatalf("ReadSetFile failed: %v", err)
	}
	if len(set) != 2 || !set.Contains("CAT") || !set.Contains("DOG") {
		t.Fatalf("expected {CAT, DOG}, got %v", set)
	}

	if _, err := ReadSetFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReadSetEmptyInput(t *testing.T) {
	set, err := ReadSet(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadSet failed: %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("expected empty set, got %d words", len(set))
	}
}
