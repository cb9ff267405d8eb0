// Package oracle computes aggregate coverage metrics between a
// reference word set and a candidate word set.
//
// The reference set may be non-redistributable: no function in this
// package returns, logs, or embeds individual reference words. Result
// carries counts and percentages only, so a reference-only word cannot
// leave the comparison by construction.
package oracle

import (
	"math"

	"github.com/verte-zerg/wordoracle/internal/sampler"
	"github.com/verte-zerg/wordoracle/internal/wordlist"
)

// Result is the aggregate outcome of one comparison run. It is built
// once and never mutated.
type Result struct {
	Language         string  `json:"language"`
	Nonce            string  `json:"nonce"`
	Fraction         int     `json:"fraction"`
	ReferenceTotal   int     `json:"reference_total"`
	ReferenceSampled int     `json:"reference_sampled"`
	CandidateTotal   int     `json:"candidate_total"`
	CandidateSampled int     `json:"candidate_sampled"`
	TruePositives    int     `json:"true_positives"`
	FalsePositives   int     `json:"false_positives"`
	FalseNegatives   int     `json:"false_negatives"`
	RecallPct        float64 `json:"recall_pct"`
	PrecisionPct     float64 `json:"precision_pct"`
}

// Compare samples both sets with the same filter and derives the set
// algebra counts and percentage metrics.
func Compare(reference, candidate wordlist.Set, f sampler.Filter, language string) Result {
	refSampled := sampleSet(reference, f)
	candSampled := sampleSet(candidate, f)

	truePositives := 0
	for word := range candSampled {
		if refSampled.Contains(word) {
			truePositives++
		}
	}
	falsePositives := len(candSampled) - truePositives
	falseNegatives := len(refSampled) - truePositives

	return Result{
		Language:         language,
		Nonce:            f.Nonce,
		Fraction:         f.Fraction,
		ReferenceTotal:   len(reference),
		ReferenceSampled: len(refSampled),
		CandidateTotal:   len(candidate),
		CandidateSampled: len(candSampled),
		TruePositives:    truePositives,
		FalsePositives:   falsePositives,
		FalseNegatives:   falseNegatives,
		RecallPct:        percentage(truePositives, len(refSampled)),
		PrecisionPct:     percentage(truePositives, len(candSampled)),
	}
}

func sampleSet(set wordlist.Set, f sampler.Filter) wordlist.Set {
	sampled := make(wordlist.Set, len(set))
	for word := range set {
		if f.Include(word) {
			sampled.Add(word)
		}
	}
	return sampled
}

// percentage returns 100*part/total rounded to 4 decimal places, or 0
// when total is 0. The zero-division case is a defined degenerate
// result, not an error: an empty sampled set simply scores 0.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := 100 * float64(part) / float64(total)
	return math.Round(pct*1e4) / 1e4
}
