package retailer

import (
	"context"
	"net/url"

	"github.com/smartcart/cartscout/models"
)

const tescoBase = "https://www.tesco.com"

// tescoSelectors targets Tesco's grocery search results grid.
var tescoSelectors = mustSelectors(selectorSet{
	Container: "ul.product-list",
	Item:      "li.product-list--list-item",
	Title:     `a[data-auto="product-tile--title"]`,
	Price:     `p[class*="price__text"]`,
	UnitPrice: `p[class*="price__subtext"]`,
	Link:      `a[data-auto="product-tile--title"]`,
})

// Tesco extracts product records from tesco.com grocery search.
type Tesco struct {
	maxRecords int
}

// NewTesco creates the Tesco adapter. maxRecords caps how many products
// one search contributes.
func NewTesco(maxRecords int) *Tesco {
	return &Tesco{maxRecords: maxRecords}
}

func (t *Tesco) Name() string { return "tesco" }

// SearchURL builds the grocery search URL for a query.
func (t *Tesco) SearchURL(query string) string {
	return tescoBase + "/groceries/en-GB/search?query=" + url.QueryEscape(query)
}

func (t *Tesco) FetchCandidates(ctx context.Context, session Session, query string) ([]models.RawProductRecord, error) {
	if err := session.Navigate(ctx, t.SearchURL(query)); err != nil {
		return nil, err
	}
	if err := session.WaitVisible(ctx, tescoSelectors.Container); err != nil {
		return nil, err
	}
	containerHTML, err := session.ElementHTML(ctx, tescoSelectors.Container)
	if err != nil {
		return nil, err
	}
	return extractRecords(containerHTML, tescoSelectors, t.maxRecords)
}

// ResolveLink prefixes Tesco's site-relative product paths with the
// store origin. Absolute links pass through untouched.
func (t *Tesco) ResolveLink(href string) string {
	return resolveAgainst(tescoBase, href)
}
