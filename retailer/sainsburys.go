package retailer

import (
	"context"
	"net/url"
	"strings"

	"github.com/smartcart/cartscout/models"
)

const sainsburysBase = "https://www.sainsburys.co.uk"

// sainsburysSelectors targets the gol-ui search results grid.
var sainsburysSelectors = mustSelectors(selectorSet{
	Container: "ul.ln-o-grid",
	Item:      "li.pt-grid-item",
	Title:     "a.pt__link",
	Price:     `[data-test-id="pt-retail-price"]`,
	UnitPrice: `[data-test-id="pt-unit-price"]`,
	Link:      "a.pt__link",
})

// Sainsburys extracts product records from sainsburys.co.uk search.
type Sainsburys struct {
	maxRecords int
}

// NewSainsburys creates the Sainsbury's adapter.
func NewSainsburys(maxRecords int) *Sainsburys {
	return &Sainsburys{maxRecords: maxRecords}
}

func (s *Sainsburys) Name() string { return "sainsburys" }

// SearchURL builds the gol-ui search URL for a query.
func (s *Sainsburys) SearchURL(query string) string {
	return sainsburysBase + "/gol-ui/SearchResults/" + url.PathEscape(query)
}

func (s *Sainsburys) FetchCandidates(ctx context.Context, session Session, query string) ([]models.RawProductRecord, error) {
	if err := session.Navigate(ctx, s.SearchURL(query)); err != nil {
		return nil, err
	}
	if err := session.WaitVisible(ctx, sainsburysSelectors.Container); err != nil {
		return nil, err
	}
	containerHTML, err := session.ElementHTML(ctx, sainsburysSelectors.Container)
	if err != nil {
		return nil, err
	}
	return extractRecords(containerHTML, sainsburysSelectors, s.maxRecords)
}

// ResolveLink handles the occasional relative href; product tiles
// normally carry absolute URLs already.
func (s *Sainsburys) ResolveLink(href string) string {
	return resolveAgainst(sainsburysBase, href)
}

// resolveAgainst prefixes relative paths with the retailer origin.
func resolveAgainst(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return base + href
}
