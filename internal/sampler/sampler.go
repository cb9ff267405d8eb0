// Package sampler implements deterministic keyed-hash word sampling.
package sampler

import (
	"crypto/sha256"
	"fmt"
	"math/big"
)

// maxHash is 2^256, the exclusive upper bound of a SHA-256 digest read
// as an unsigned integer.
var maxHash = new(big.Int).Lsh(big.NewInt(1), 256)

// Filter decides, per word, whether it belongs to the sampled view.
// Inclusion is a pure function of (nonce, word, fraction): SHA-256 is
// computed over the byte-exact concatenation of nonce and word (no
// separator), the digest is read as a 256-bit unsigned integer h, and
// the word is included iff h < 2^256 / fraction. The floor division
// makes the rate an approximation of 1/fraction for fractions that do
// not evenly divide 2^256.
type Filter struct {
	Nonce    string
	Fraction int
}

// New builds a Filter. Fraction must be a positive integer; 1 keeps
// every word.
func New(nonce string, fraction int) (Filter, error) {
	if fraction < 1 {
		return Filter{}, fmt.Errorf("fraction must be >= 1, got %d", fraction)
	}
	return Filter{Nonce: nonce, Fraction: fraction}, nil
}

// Include reports whether the word is part of the sampled view. The
// answer depends only on the filter's nonce and fraction and on the
// word itself, so it is stable across calls, processes, and machines.
func (f Filter) Include(word string) bool {
	if f.Fraction <= 1 {
		return true
	}
	digest := sha256.Sum256([]byte(f.Nonce + word))
	h := new(big.Int).SetBytes(digest[:])
	threshold := new(big.Int).Div(maxHash, big.NewInt(int64(f.Fraction)))
	return h.Cmp(threshold) < 0
}
