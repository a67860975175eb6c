package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smartcart/cartscout/models"
	"github.com/smartcart/cartscout/retailer"
)

// Session is the browser resource owned by the orchestrator for the
// lifetime of one request.
type Session interface {
	retailer.Session
	Close()
}

// SessionProvider acquires one browser session per compare request.
type SessionProvider interface {
	Acquire(ctx context.Context) (Session, error)
}

// SessionProviderFunc adapts a function to the SessionProvider interface.
type SessionProviderFunc func(ctx context.Context) (Session, error)

func (f SessionProviderFunc) Acquire(ctx context.Context) (Session, error) { return f(ctx) }

// Orchestrator runs one compare request end to end: validate the list,
// acquire exactly one browser session, aggregate and rank each item in
// input order, and release the session on every exit path.
type Orchestrator struct {
	provider   SessionProvider
	aggregator *Aggregator

	// timeout bounds the whole request. Zero disables the bound.
	timeout time.Duration
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(provider SessionProvider, aggregator *Aggregator, timeout time.Duration) *Orchestrator {
	return &Orchestrator{provider: provider, aggregator: aggregator, timeout: timeout}
}

// Run processes the shopping list and returns one ItemResult per input
// item, in input order. A structurally invalid list fails before any
// browser session is acquired. Per-retailer failures degrade silently
// to shorter options lists; anything else aborts the remaining items
// and surfaces a single aggregate failure.
func (o *Orchestrator) Run(ctx context.Context, shoppingList []models.ShoppingListItem) ([]models.ItemResult, error) {
	if err := validateList(shoppingList); err != nil {
		return nil, err
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	session, err := o.provider.Acquire(ctx)
	if err != nil {
		return nil, requestError(ctx, err)
	}
	defer session.Close()

	results := make([]models.ItemResult, 0, len(shoppingList))
	for _, item := range shoppingList {
		item.Defaults()

		candidates, err := o.aggregator.Aggregate(ctx, session, item)
		if err != nil {
			return nil, requestError(ctx, err)
		}

		results = append(results, models.ItemResult{
			ProductName: item.Name,
			Preference:  item.Preference,
			Options:     Rank(candidates, item.Preference),
		})
	}

	return results, nil
}

// RunSingle serves the legacy single-term contract: one query, results
// keyed by retailer, no ranking applied.
func (o *Orchestrator) RunSingle(ctx context.Context, searchTerm string) (map[string][]models.ProductCandidate, error) {
	if strings.TrimSpace(searchTerm) == "" {
		return nil, models.NewCompareError(models.ErrCodeInvalidInput, "missing search term", nil)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	session, err := o.provider.Acquire(ctx)
	if err != nil {
		return nil, requestError(ctx, err)
	}
	defer session.Close()

	stores, err := o.aggregator.ByStore(ctx, session, searchTerm)
	if err != nil {
		return nil, requestError(ctx, err)
	}
	return stores, nil
}

// validateList rejects structurally invalid shopping lists before any
// browser work happens.
func validateList(shoppingList []models.ShoppingListItem) error {
	if len(shoppingList) == 0 {
		return models.NewCompareError(models.ErrCodeInvalidInput, "shopping list is empty", nil)
	}
	for i, item := range shoppingList {
		if strings.TrimSpace(item.Name) == "" {
			return models.NewCompareError(
				models.ErrCodeInvalidInput,
				fmt.Sprintf("shopping list item %d is missing a name", i),
				nil,
			)
		}
	}
	return nil
}

// requestError classifies a failure leaving the orchestrator. Once the
// request-wide deadline has expired, whatever error bubbled up from the
// session is reported as a compare timeout; the per-navigation timeout
// codes stay retailer-scoped and never reach here.
func requestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return models.NewCompareError(models.ErrCodeCompareTimeout, "compare request timed out", err)
	}
	return sessionError(err)
}

// sessionError guarantees failures leaving the orchestrator carry an
// error code the HTTP layer can map.
func sessionError(err error) error {
	var ce *models.CompareError
	if errors.As(err, &ce) {
		return err
	}
	return models.NewCompareError(models.ErrCodeBrowserCrash, "browser session failed", err)
}
