package compare

import (
	"testing"

	"github.com/smartcart/cartscout/models"
	"github.com/smartcart/cartscout/quality"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"pound prefix", "£2.20", 2.20},
		{"empty", "", 0},
		{"thousands separator", "£1,099.00", 1099.00},
		{"no symbol", "3.50", 3.50},
		{"whitespace padded", "  £0.85  ", 0.85},
		{"clubcard noise", "£2.00 Clubcard Price", 2.00},
		{"non-numeric", "price unavailable", 0},
		{"pence only", "85p", 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.text)
			if got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	ad := &fakeAdapter{name: "tesco", base: "https://www.tesco.com"}
	raw := models.RawProductRecord{
		Title:     "Tesco Whole Milk 2.272L",
		Price:     "£1.55",
		UnitPrice: "£0.68/litre",
		Link:      "/groceries/en-GB/products/254942556",
	}

	c := Normalize(raw, ad, 2, quality.Fixed(4))

	if c.ID != "tesco-2" {
		t.Errorf("ID = %q, want %q", c.ID, "tesco-2")
	}
	if c.Name != raw.Title {
		t.Errorf("Name = %q, want %q", c.Name, raw.Title)
	}
	if c.Price != 1.55 {
		t.Errorf("Price = %v, want 1.55", c.Price)
	}
	if c.PricePerUnit != "£0.68/litre" {
		t.Errorf("PricePerUnit = %q", c.PricePerUnit)
	}
	if c.Store != "tesco" {
		t.Errorf("Store = %q", c.Store)
	}
	if c.QualityScore != 4 {
		t.Errorf("QualityScore = %d, want 4", c.QualityScore)
	}
	if c.IsPreferred {
		t.Error("IsPreferred should default to false")
	}
	if c.Link != "https://www.tesco.com/groceries/en-GB/products/254942556" {
		t.Errorf("Link = %q", c.Link)
	}
}

func TestNormalize_MissingFields(t *testing.T) {
	ad := &fakeAdapter{name: "sainsburys"}
	raw := models.RawProductRecord{} // extraction found nothing

	c := Normalize(raw, ad, 0, quality.Fixed(1))

	if c.Name != "" {
		t.Errorf("Name should be empty string, got %q", c.Name)
	}
	if c.Price != 0 {
		t.Errorf("Price should be 0, got %v", c.Price)
	}
	if c.Link != "" {
		t.Errorf("Link should be empty, got %q", c.Link)
	}
}
