// Package compare is the aggregation-and-ranking core: it normalizes
// raw retailer records into candidates, merges them per shopping-list
// item, ranks them by the requested preference, and orchestrates the
// browser session for one request.
package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smartcart/cartscout/models"
	"github.com/smartcart/cartscout/quality"
	"github.com/smartcart/cartscout/retailer"
)

// Normalize converts one raw scraped record into a canonical candidate.
// The index is the record's position within its retailer's batch; IDs
// are only unique within a single item's options list.
func Normalize(raw models.RawProductRecord, ad retailer.Adapter, index int, scorer quality.Scorer) models.ProductCandidate {
	return models.ProductCandidate{
		ID:           fmt.Sprintf("%s-%d", ad.Name(), index),
		Name:         raw.Title,
		Price:        ParsePrice(raw.Price),
		PricePerUnit: raw.UnitPrice,
		Store:        ad.Name(),
		QualityScore: scorer.Score(ad.Name(), raw.Title),
		Link:         ad.ResolveLink(raw.Link),
	}
}

// ParsePrice extracts a numeric amount from currency text like "£2.20"
// or "£1,099.00". Everything but digits and the decimal point is
// stripped before parsing. Empty or unparsable text yields 0 — a
// deliberate degraded-data policy, not an error.
func ParsePrice(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	price, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return price
}
