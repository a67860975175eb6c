// Package retailer encapsulates per-retailer query construction and
// page-data extraction. Each adapter knows how to build a search URL,
// drive a shared browser session to it, and map retailer-specific DOM
// fields into raw product records.
package retailer

import (
	"context"

	"github.com/smartcart/cartscout/models"
)

// Session is the slice of browser capability an adapter needs for one
// fetch: navigate, wait for the results container, read its HTML.
// Adapters never retain the session beyond a single call.
type Session interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string) error
	ElementHTML(ctx context.Context, selector string) (string, error)
}

// Adapter is one retailer's query/extraction strategy.
type Adapter interface {
	// Name is the retailer identifier used in candidate IDs, the Store
	// field, and the legacy retailer-keyed response shape.
	Name() string

	// FetchCandidates navigates the session to the retailer's search
	// page for the query and extracts up to the adapter's record cap.
	// Missing sub-fields yield empty strings; a missing results
	// container is an error.
	FetchCandidates(ctx context.Context, session Session, query string) ([]models.RawProductRecord, error)

	// ResolveLink turns an extracted href into an absolute product URL.
	ResolveLink(href string) string
}
