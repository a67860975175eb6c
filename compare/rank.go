package compare

import (
	"math"
	"sort"

	"github.com/smartcart/cartscout/models"
)

// Rank orders candidates by the requested preference and marks the top
// candidate preferred. It reorders in place and returns the same slice.
//
// Sort semantics:
//
//	cheapest:        ascending price; unparsable prices (0) sort first
//	highest-quality: descending quality score
//	best-value:      ascending price/score; score 0 sorts last
//
// An unrecognized preference behaves as "cheapest" — the documented
// default, not an error. Ties keep the pre-ranking retailer order
// (stable sort). An empty list stays empty with nothing preferred.
func Rank(candidates []models.ProductCandidate, preference string) []models.ProductCandidate {
	switch preference {
	case models.PreferenceHighestQuality:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].QualityScore > candidates[j].QualityScore
		})
	case models.PreferenceBestValue:
		sort.SliceStable(candidates, func(i, j int) bool {
			return valueRatio(candidates[i]) < valueRatio(candidates[j])
		})
	default: // cheapest
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Price < candidates[j].Price
		})
	}

	if len(candidates) > 0 {
		candidates[0].IsPreferred = true
	}
	return candidates
}

// valueRatio is price per quality point. A zero score would divide by
// zero; such candidates are worst-value and sort last.
func valueRatio(c models.ProductCandidate) float64 {
	if c.QualityScore <= 0 {
		return math.Inf(1)
	}
	return c.Price / float64(c.QualityScore)
}
