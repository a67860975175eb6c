package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/smartcart/cartscout/models"
	"github.com/smartcart/cartscout/quality"
	"github.com/smartcart/cartscout/retailer"
)

func TestAggregate_MergesInRetailerOrder(t *testing.T) {
	a := &fakeAdapter{name: "tesco", records: []models.RawProductRecord{
		rawRecord("milk A", "£2.00"),
		rawRecord("milk B", "£1.50"),
	}}
	b := &fakeAdapter{name: "sainsburys", records: []models.RawProductRecord{
		rawRecord("milk C", "£1.80"),
	}}
	agg := NewAggregator([]retailer.Adapter{a, b}, quality.Fixed(3), nil)

	candidates, err := agg.Aggregate(context.Background(), &fakeSession{}, models.ShoppingListItem{Name: "milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantIDs := []string{"tesco-0", "tesco-1", "sainsburys-0"}
	if len(candidates) != len(wantIDs) {
		t.Fatalf("expected %d candidates, got %d", len(wantIDs), len(candidates))
	}
	for i, want := range wantIDs {
		if candidates[i].ID != want {
			t.Errorf("candidates[%d].ID = %q, want %q", i, candidates[i].ID, want)
		}
	}
}

func TestAggregate_IsolatesRetailerFailure(t *testing.T) {
	a := &fakeAdapter{name: "tesco", records: []models.RawProductRecord{
		rawRecord("milk A", "£2.00"),
	}}
	b := &fakeAdapter{name: "sainsburys", err: models.NewCompareError(
		models.ErrCodeRetailerTimeout, "results container did not appear", nil,
	)}
	agg := NewAggregator([]retailer.Adapter{a, b}, quality.Fixed(3), nil)

	candidates, err := agg.Aggregate(context.Background(), &fakeSession{}, models.ShoppingListItem{Name: "milk"})
	if err != nil {
		t.Fatalf("a single retailer failure should not propagate, got: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("expected only the healthy retailer's candidate, got %d", len(candidates))
	}
	if candidates[0].Store != "tesco" {
		t.Errorf("candidate from wrong store: %q", candidates[0].Store)
	}
}

func TestAggregate_FailedRetailerDoesNotStopLaterOnes(t *testing.T) {
	a := &fakeAdapter{name: "tesco", err: errors.New("selector timeout")}
	b := &fakeAdapter{name: "sainsburys", records: []models.RawProductRecord{
		rawRecord("milk C", "£1.80"),
	}}
	agg := NewAggregator([]retailer.Adapter{a, b}, quality.Fixed(3), nil)

	candidates, err := agg.Aggregate(context.Background(), &fakeSession{}, models.ShoppingListItem{Name: "milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.calls != 1 {
		t.Errorf("second retailer should still run after the first failed, calls = %d", b.calls)
	}
	if len(candidates) != 1 || candidates[0].Store != "sainsburys" {
		t.Errorf("expected one sainsburys candidate, got %+v", candidates)
	}
}

func TestAggregate_BrowserCrashIsFatal(t *testing.T) {
	a := &fakeAdapter{name: "tesco", err: models.NewCompareError(
		models.ErrCodeBrowserCrash, "browser went away", nil,
	)}
	b := &fakeAdapter{name: "sainsburys", records: []models.RawProductRecord{
		rawRecord("milk C", "£1.80"),
	}}
	agg := NewAggregator([]retailer.Adapter{a, b}, quality.Fixed(3), nil)

	_, err := agg.Aggregate(context.Background(), &fakeSession{}, models.ShoppingListItem{Name: "milk"})
	if err == nil {
		t.Fatal("browser-level failure should propagate")
	}
	if b.calls != 0 {
		t.Errorf("remaining retailers should not run after a fatal failure, calls = %d", b.calls)
	}
}

func TestAggregate_CancelledContextIsFatal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &fakeAdapter{name: "tesco", err: errors.New("context canceled")}
	agg := NewAggregator([]retailer.Adapter{a}, quality.Fixed(3), nil)

	_, err := agg.Aggregate(ctx, &fakeSession{}, models.ShoppingListItem{Name: "milk"})
	if err == nil {
		t.Fatal("cancellation should propagate, not degrade to zero candidates")
	}
}

func TestByStore_GroupsByRetailer(t *testing.T) {
	a := &fakeAdapter{name: "tesco", records: []models.RawProductRecord{
		rawRecord("milk A", "£2.00"),
	}}
	b := &fakeAdapter{name: "sainsburys", err: errors.New("selector timeout")}
	agg := NewAggregator([]retailer.Adapter{a, b}, quality.Fixed(3), nil)

	stores, err := agg.ByStore(context.Background(), &fakeSession{}, "milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stores["tesco"]) != 1 {
		t.Errorf("tesco should have 1 candidate, got %d", len(stores["tesco"]))
	}
	// A failed retailer still appears, with an empty (non-nil) list.
	if got, ok := stores["sainsburys"]; !ok || got == nil || len(got) != 0 {
		t.Errorf("sainsburys should be an empty list, got %v (present=%v)", got, ok)
	}
}
