package compare

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smartcart/cartscout/cache"
	"github.com/smartcart/cartscout/models"
	"github.com/smartcart/cartscout/quality"
	"github.com/smartcart/cartscout/retailer"
)

// Aggregator merges candidates from every configured retailer for one
// shopping-list item. Retailers run in declaration order against the
// shared session (never concurrently), and each one is independently
// fault-isolated: a failed retailer contributes zero candidates and a
// scoped warning, nothing more.
type Aggregator struct {
	adapters []retailer.Adapter
	scorer   quality.Scorer
	cache    *cache.Cache // nil disables query caching
}

// NewAggregator creates an Aggregator over the given adapters.
func NewAggregator(adapters []retailer.Adapter, scorer quality.Scorer, c *cache.Cache) *Aggregator {
	return &Aggregator{adapters: adapters, scorer: scorer, cache: c}
}

// Aggregate collects normalized candidates for one item across all
// retailers. The returned slice is in retailer-declaration order — the
// pre-ranking baseline. The only errors returned are fatal ones
// (session/browser failure, request timeout); per-retailer failures are
// swallowed here by design.
func (a *Aggregator) Aggregate(ctx context.Context, session retailer.Session, item models.ShoppingListItem) ([]models.ProductCandidate, error) {
	candidates := make([]models.ProductCandidate, 0, len(a.adapters))

	for _, ad := range a.adapters {
		records, err := a.fetch(ctx, session, ad, item.Name)
		if err != nil {
			if fatal(ctx, err) {
				return nil, err
			}
			slog.Warn("retailer extraction failed",
				"retailer", ad.Name(),
				"item", item.Name,
				"error", err,
			)
			continue
		}

		for i, raw := range records {
			candidates = append(candidates, Normalize(raw, ad, i, a.scorer))
		}
	}

	return candidates, nil
}

// ByStore collects candidates for a single query, grouped by retailer
// identifier. This backs the legacy retailer-keyed response shape.
func (a *Aggregator) ByStore(ctx context.Context, session retailer.Session, query string) (map[string][]models.ProductCandidate, error) {
	stores := make(map[string][]models.ProductCandidate, len(a.adapters))

	for _, ad := range a.adapters {
		stores[ad.Name()] = []models.ProductCandidate{}

		records, err := a.fetch(ctx, session, ad, query)
		if err != nil {
			if fatal(ctx, err) {
				return nil, err
			}
			slog.Warn("retailer extraction failed",
				"retailer", ad.Name(),
				"item", query,
				"error", err,
			)
			continue
		}

		for i, raw := range records {
			stores[ad.Name()] = append(stores[ad.Name()], Normalize(raw, ad, i, a.scorer))
		}
	}

	return stores, nil
}

// fetch returns raw records for one retailer+query, consulting the
// query cache first. Only successful extractions are cached.
func (a *Aggregator) fetch(ctx context.Context, session retailer.Session, ad retailer.Adapter, query string) ([]models.RawProductRecord, error) {
	key := cache.Key(ad.Name(), query)
	if records, hit := a.cache.Get(key); hit {
		return records, nil
	}

	records, err := ad.FetchCandidates(ctx, session, query)
	if err != nil {
		return nil, err
	}
	a.cache.Set(key, records)
	return records, nil
}

// fatal reports whether an adapter error must abort the whole request
// instead of degrading to zero candidates for one retailer. Request
// cancellation and browser-level crashes are not retailer-scoped.
func fatal(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	var ce *models.CompareError
	if errors.As(err, &ce) {
		return ce.Code == models.ErrCodeBrowserCrash || ce.Code == models.ErrCodeCompareTimeout
	}
	return false
}
