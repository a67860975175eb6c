package compare

import (
	"context"
	"strings"

	"github.com/smartcart/cartscout/models"
	"github.com/smartcart/cartscout/retailer"
)

// fakeAdapter serves canned records (or a canned error) without a browser.
// fetch, when set, overrides the canned behaviour entirely.
type fakeAdapter struct {
	name    string
	base    string
	records []models.RawProductRecord
	err     error
	fetch   func(ctx context.Context) ([]models.RawProductRecord, error)
	calls   int
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) FetchCandidates(ctx context.Context, session retailer.Session, query string) ([]models.RawProductRecord, error) {
	f.calls++
	if f.fetch != nil {
		return f.fetch(ctx)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeAdapter) ResolveLink(href string) string {
	if href == "" || f.base == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return f.base + href
}

// fakeSession satisfies the session interfaces without any browser.
type fakeSession struct {
	closed bool
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error            { return nil }
func (s *fakeSession) WaitVisible(ctx context.Context, selector string) error    { return nil }
func (s *fakeSession) ElementHTML(ctx context.Context, sel string) (string, error) { return "", nil }
func (s *fakeSession) Close()                                                     { s.closed = true }

// fakeProvider records session acquisitions.
type fakeProvider struct {
	session  *fakeSession
	err      error
	acquired int
}

func (p *fakeProvider) Acquire(ctx context.Context) (Session, error) {
	p.acquired++
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

func rawRecord(title, price string) models.RawProductRecord {
	return models.RawProductRecord{Title: title, Price: price}
}
