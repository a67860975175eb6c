package browser

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/smartcart/cartscout/models"
	"github.com/ysmood/gson"
)

// Session is one browser page scoped to one compare request. It is
// exclusively owned by the session orchestrator; retailer adapters only
// borrow it for the duration of a single fetch. Not safe for concurrent
// navigation.
type Session struct {
	page        *rod.Page
	router      *rod.HijackRouter
	mgr         *Manager
	navTimeout  time.Duration
	waitTimeout time.Duration
	closed      bool
}

// Navigate loads the URL and waits for the DOM to settle. The settle
// wait is best-effort: SPA search pages keep mutating, so a page that
// never converges is not an error.
func (s *Session) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx).Timeout(s.navTimeout)

	if err := p.Navigate(url); err != nil {
		return categorizeError(err, "navigation to search page failed")
	}

	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"url", url, "error", err,
		)
	}
	return nil
}

// WaitVisible blocks until at least one element matching the selector
// exists, bounded by the configured selector timeout. A timeout means
// the retailer's results never rendered; callers treat that as a failed
// extraction rather than reading a stale page.
func (s *Session) WaitVisible(ctx context.Context, selector string) error {
	p := s.page.Context(ctx).Timeout(s.waitTimeout)

	if err := p.WaitElementsMoreThan(selector, 0); err != nil {
		return categorizeError(err, "results container "+selector+" did not appear")
	}
	return nil
}

// ElementHTML returns the outer HTML of the first element matching the
// selector.
func (s *Session) ElementHTML(ctx context.Context, selector string) (string, error) {
	p := s.page.Context(ctx).Timeout(s.waitTimeout)

	el, err := p.Element(selector)
	if err != nil {
		return "", categorizeError(err, "element "+selector+" not found")
	}
	html, err := el.HTML()
	if err != nil {
		return "", categorizeError(err, "failed to read element HTML")
	}
	return html, nil
}

// Close releases the page. Safe to call multiple times; failures are
// logged but never returned, so release can't shadow a response that
// has already been decided.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	if s.router != nil {
		if err := s.router.Stop(); err != nil {
			slog.Warn("session cleanup: failed to stop hijack router", "error", err)
		}
	}
	if err := s.page.Close(); err != nil {
		slog.Warn("session cleanup: failed to close page", "error", err)
	}
	s.mgr.activeSessions.Add(-1)
}

// setDefaultHeaders applies a consistent Accept-Language so retailer
// pages render GBP prices and English titles.
func setDefaultHeaders(page *rod.Page) {
	err := proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{
			"Accept-Language": "en-GB,en;q=0.9",
		}),
	}.Call(page)
	if err != nil {
		slog.Warn("failed to set default headers, proceeding without them",
			"error", err,
		)
	}
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders
// type (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw errors into typed CompareErrors so the
// aggregation layer can tell retailer-scoped timeouts from fatal
// session failures.
func categorizeError(err error, msg string) *models.CompareError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewCompareError(models.ErrCodeRetailerTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewCompareError(models.ErrCodeCompareTimeout, "request canceled", err)
	default:
		return models.NewCompareError(models.ErrCodeNavigation, msg, err)
	}
}
