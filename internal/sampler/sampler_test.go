package sampler

import (
	"fmt"
	"testing"
)

func TestNewRejectsInvalidFraction(t *testing.T) {
	for _, fraction := range []int{0, -1, -100} {
		if _, err := New("", fraction); err == nil {
			t.Fatalf("expected error for fraction %d", fraction)
		}
	}
}

func TestIncludeDeterministic(t *testing.T) {
	filter, err := New("salt", 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, word := range []string{"CAT", "DOG", "BIRD", "FISH"} {
		first := filter.Include(word)
		for i := 0; i < 5; i++ {
			if filter.Include(word) != first {
				t.Fatalf("Include(%q) changed between calls", word)
			}
		}
		rebuilt, err := New("salt", 3)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if rebuilt.Include(word) != first {
			t.Fatalf("Include(%q) differs between filter instances", word)
		}
	}
}

func TestFractionOneKeepsEverything(t *testing.T) {
	filter, err := New("any-nonce", 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < 1000; i++ {
		if !filter.Include(fmt.Sprintf("WORD%04d", i)) {
			t.Fatalf("fraction 1 excluded WORD%04d", i)
		}
	}
}

func TestInclusionRateApproachesFraction(t *testing.T) {
	const population = 4000
	filter, err := New("rate-test", 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	included := 0
	for i := 0; i < population; i++ {
		if filter.Include(fmt.Sprintf("WORD%05d", i)) {
			included++
		}
	}
	expected := population / 4
	// Allow a wide band around 1/fraction; the filter is only required
	// to approximate the rate over a large population.
	if included < expected*3/4 || included > expected*5/4 {
		t.Fatalf("expected roughly %d included words, got %d", expected, included)
	}
}

func TestNonceChangesSample(t *testing.T) {
	a, err := New("nonce-a", 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b, err := New("nonce-b", 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	differs := false
	for i := 0; i < 200; i++ {
		word := fmt.Sprintf("WORD%03d", i)
		if a.Include(word) != b.Include(word) {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatalf("expected different nonces to produce different samples")
	}
}
