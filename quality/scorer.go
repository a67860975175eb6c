// Package quality supplies product quality scores to the normalizer.
//
// Scoring is an injected strategy so a real signal source (reviews,
// ratings APIs) can replace the placeholder without touching ranking.
package quality

import "math/rand/v2"

// MaxScore is the upper bound of the scoring range (scores are 1..MaxScore).
const MaxScore = 5

// Scorer assigns a quality score to an extracted product.
type Scorer interface {
	Score(store, title string) int
}

// RandomScorer returns a uniform random score in 1..MaxScore.
//
// This is a placeholder, not a real quality signal: no external scoring
// source is integrated yet, and downstream ranking only needs the range
// contract to hold.
type RandomScorer struct{}

// NewRandomScorer creates the placeholder scorer.
func NewRandomScorer() RandomScorer { return RandomScorer{} }

func (RandomScorer) Score(store, title string) int {
	return 1 + rand.IntN(MaxScore)
}

// Fixed is a Scorer that always returns the same score. Useful for tests
// and for callers that want deterministic output.
type Fixed int

func (f Fixed) Score(store, title string) int { return int(f) }
