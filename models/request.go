package models

// Ranking preferences accepted on a shopping-list item.
const (
	PreferenceCheapest       = "cheapest"
	PreferenceHighestQuality = "highest-quality"
	PreferenceBestValue      = "best-value"
)

// ShoppingListItem is one entry of the inbound shopping list.
type ShoppingListItem struct {
	// Name is the search text for the product. Required.
	Name string `json:"name" binding:"required"`

	// Preference selects the ranking strategy for this item.
	// Allowed: "cheapest" (default), "highest-quality", "best-value".
	// Unrecognized values fall back to "cheapest".
	Preference string `json:"preference,omitempty"`
}

// Defaults applies default values to unset fields.
func (i *ShoppingListItem) Defaults() {
	if i.Preference == "" {
		i.Preference = PreferenceCheapest
	}
}

// CompareRequest is the payload for POST /api/v1/compare.
type CompareRequest struct {
	ShoppingList []ShoppingListItem `json:"shoppingList" binding:"required,min=1,dive"`
}

// LegacySearchRequest is the payload for the original POST /scrape route,
// kept wire-compatible with the first API revision: a single search term,
// results keyed by retailer instead of grouped by item.
type LegacySearchRequest struct {
	SearchTerm string `json:"searchTerm" binding:"required"`
}
