package models

// RawProductRecord is a retailer adapter's output for one product node,
// before normalization. All fields are free text exactly as extracted;
// missing sub-fields are empty strings, never an error. Records are
// ephemeral and discarded once normalized.
type RawProductRecord struct {
	Title     string
	Price     string // currency-symbol-prefixed text, may be empty
	UnitPrice string
	Link      string // absolute URL or site-relative path, retailer-dependent
}

// ProductCandidate is a normalized, retailer-agnostic product record.
// Candidate JSON uses camelCase to stay wire-compatible with the frontend.
type ProductCandidate struct {
	// ID is stable within one aggregation: "<store>-<index>".
	ID string `json:"id"`

	// Name is the display title; empty string when extraction found none.
	Name string `json:"name"`

	// Price is the numeric currency amount; 0 when the price text was
	// absent or unparsable (degraded data, not an error).
	Price float64 `json:"price"`

	// PricePerUnit is the free-text unit-price string, empty if unavailable.
	PricePerUnit string `json:"pricePerUnit"`

	// Store is the retailer identifier.
	Store string `json:"store"`

	// QualityScore is supplied by the injected scorer (1..5).
	QualityScore int `json:"qualityScore"`

	// IsPreferred marks the single top-ranked candidate per item.
	IsPreferred bool `json:"isPreferred"`

	// Link is the absolute URL to the product page.
	Link string `json:"link"`
}

// ItemResult is the ranked outcome for one shopping-list item.
// Options are in ranked order; at most one carries IsPreferred.
type ItemResult struct {
	ProductName string             `json:"productName"`
	Preference  string             `json:"preference"`
	Options     []ProductCandidate `json:"options"`
}

// CompareResponse is the response for POST /api/v1/compare.
type CompareResponse struct {
	// Success indicates whether the comparison completed without errors.
	Success bool `json:"success"`

	// Results holds one entry per shopping-list item, in input order.
	Results []ItemResult `json:"results,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent serving a request.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string       `json:"status"` // "healthy" or "degraded"
	Uptime  string       `json:"uptime"`
	Browser BrowserStats `json:"browser"`
	Version string       `json:"version"`
}

// BrowserStats reports the state of the managed browser.
type BrowserStats struct {
	Connected      bool `json:"connected"`
	ActiveSessions int  `json:"active_sessions"`
}
