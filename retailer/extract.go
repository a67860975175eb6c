package retailer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/smartcart/cartscout/models"
	"golang.org/x/net/html"
)

// selectorSet describes where one retailer keeps its product data
// inside the search-results container.
type selectorSet struct {
	Container string // results container, waited on after navigation
	Item      string // one product node, relative to the container
	Title     string // title node, relative to the item
	Price     string // price text node
	UnitPrice string // unit-price text node
	Link      string // anchor whose href points at the product page
}

// validate compiles every selector, catching typos at adapter
// construction instead of mid-request.
func (s selectorSet) validate() error {
	for name, sel := range map[string]string{
		"container":  s.Container,
		"item":       s.Item,
		"title":      s.Title,
		"price":      s.Price,
		"unit price": s.UnitPrice,
		"link":       s.Link,
	} {
		if sel == "" {
			continue
		}
		if _, err := cascadia.Parse(sel); err != nil {
			return fmt.Errorf("invalid %s selector %q: %w", name, sel, err)
		}
	}
	return nil
}

// mustSelectors panics on an invalid selector set. Selector sets are
// compile-time constants, so a failure here is a programmer error.
func mustSelectors(s selectorSet) selectorSet {
	if err := s.validate(); err != nil {
		panic(err)
	}
	return s
}

// extractRecords parses the results-container HTML and maps up to max
// product nodes into raw records. Extraction is lenient by contract:
// a node missing its title, price, unit price, or link contributes
// empty strings for those fields rather than failing the batch.
func extractRecords(containerHTML string, sel selectorSet, max int) ([]models.RawProductRecord, error) {
	node, err := html.Parse(strings.NewReader(containerHTML))
	if err != nil {
		return nil, fmt.Errorf("parse results container: %w", err)
	}
	doc := goquery.NewDocumentFromNode(node)

	records := make([]models.RawProductRecord, 0, max)
	doc.Find(sel.Item).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if len(records) >= max {
			return false
		}

		link, _ := item.Find(sel.Link).First().Attr("href")
		records = append(records, models.RawProductRecord{
			Title:     nodeText(item, sel.Title),
			Price:     nodeText(item, sel.Price),
			UnitPrice: nodeText(item, sel.UnitPrice),
			Link:      strings.TrimSpace(link),
		})
		return true
	})

	return records, nil
}

// nodeText returns the trimmed text of the first match, or "".
func nodeText(s *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(s.Find(selector).First().Text())
}
