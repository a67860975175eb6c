package compare

import (
	"testing"

	"github.com/smartcart/cartscout/models"
)

func candidate(id string, price float64, score int) models.ProductCandidate {
	return models.ProductCandidate{ID: id, Price: price, QualityScore: score}
}

func TestRank_Cheapest(t *testing.T) {
	candidates := []models.ProductCandidate{
		candidate("a-0", 2.00, 3),
		candidate("a-1", 1.50, 3),
		candidate("b-0", 1.80, 3),
	}

	ranked := Rank(candidates, models.PreferenceCheapest)

	wantOrder := []string{"a-1", "b-0", "a-0"}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("ranked[%d].ID = %q, want %q", i, ranked[i].ID, want)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Price > ranked[i].Price {
			t.Errorf("cheapest order violated at %d: %.2f > %.2f", i, ranked[i-1].Price, ranked[i].Price)
		}
	}
}

func TestRank_CheapestUnparsablePriceSortsFirst(t *testing.T) {
	candidates := []models.ProductCandidate{
		candidate("a-0", 2.00, 3),
		candidate("b-0", 0, 3), // price text was unparsable
	}

	ranked := Rank(candidates, models.PreferenceCheapest)

	if ranked[0].ID != "b-0" {
		t.Errorf("zero-price candidate should sort first, got %q", ranked[0].ID)
	}
}

func TestRank_HighestQuality(t *testing.T) {
	candidates := []models.ProductCandidate{
		candidate("a-0", 1.00, 2),
		candidate("a-1", 3.00, 5),
		candidate("b-0", 2.00, 4),
	}

	ranked := Rank(candidates, models.PreferenceHighestQuality)

	wantOrder := []string{"a-1", "b-0", "a-0"}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("ranked[%d].ID = %q, want %q", i, ranked[i].ID, want)
		}
	}
}

func TestRank_BestValue(t *testing.T) {
	candidates := []models.ProductCandidate{
		candidate("a-0", 4.00, 2), // ratio 2.0
		candidate("a-1", 3.00, 3), // ratio 1.0
		candidate("b-0", 4.50, 3), // ratio 1.5
	}

	ranked := Rank(candidates, models.PreferenceBestValue)

	wantOrder := []string{"a-1", "b-0", "a-0"}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("ranked[%d].ID = %q, want %q", i, ranked[i].ID, want)
		}
	}
}

func TestRank_BestValueZeroQualitySortsLast(t *testing.T) {
	candidates := []models.ProductCandidate{
		candidate("a-0", 0.10, 0), // would divide by zero
		candidate("a-1", 9.00, 1),
	}

	ranked := Rank(candidates, models.PreferenceBestValue)

	if ranked[len(ranked)-1].ID != "a-0" {
		t.Errorf("zero-quality candidate should sort last, got order %q, %q", ranked[0].ID, ranked[1].ID)
	}
}

func TestRank_UnrecognizedPreferenceBehavesAsCheapest(t *testing.T) {
	build := func() []models.ProductCandidate {
		return []models.ProductCandidate{
			candidate("a-0", 2.00, 1),
			candidate("a-1", 1.50, 5),
			candidate("b-0", 1.80, 3),
		}
	}

	fastest := Rank(build(), "fastest")
	cheapest := Rank(build(), models.PreferenceCheapest)

	for i := range cheapest {
		if fastest[i].ID != cheapest[i].ID {
			t.Errorf("position %d: %q != %q", i, fastest[i].ID, cheapest[i].ID)
		}
	}
}

func TestRank_TiesKeepRetailerOrder(t *testing.T) {
	candidates := []models.ProductCandidate{
		candidate("a-0", 1.50, 3),
		candidate("b-0", 1.50, 3),
		candidate("b-1", 1.50, 3),
	}

	ranked := Rank(candidates, models.PreferenceCheapest)

	wantOrder := []string{"a-0", "b-0", "b-1"}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("tie at position %d broke pre-ranking order: got %q, want %q", i, ranked[i].ID, want)
		}
	}
}

func TestRank_ExactlyOnePreferred(t *testing.T) {
	candidates := []models.ProductCandidate{
		candidate("a-0", 2.00, 3),
		candidate("a-1", 1.50, 3),
		candidate("b-0", 1.80, 3),
	}

	ranked := Rank(candidates, models.PreferenceCheapest)

	preferred := 0
	for _, c := range ranked {
		if c.IsPreferred {
			preferred++
		}
	}
	if preferred != 1 {
		t.Errorf("expected exactly 1 preferred candidate, got %d", preferred)
	}
	if !ranked[0].IsPreferred {
		t.Error("the first ranked candidate should be preferred")
	}
}

func TestRank_EmptyList(t *testing.T) {
	ranked := Rank([]models.ProductCandidate{}, models.PreferenceCheapest)
	if len(ranked) != 0 {
		t.Errorf("expected empty result, got %d candidates", len(ranked))
	}
}
