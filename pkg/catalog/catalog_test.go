package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"base":      CategoryBase,
		"standard":  CategoryStandard,
		"optional":  CategoryOptional,
		"security":  CategorySecurity,
		"Standard":  CategoryStandard,
		" security": CategorySecurity,
		"weird":     CategoryUnrecognized,
		"":          CategoryUnrecognized,
	}

	for raw, want := range cases {
		if got := ParseCategory(raw); got != want {
			t.Errorf("ParseCategory(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestDisplayTextFallbackOrder(t *testing.T) {
	opt := Option{Code: "3AB", Text: "text", Label: "label", Description: "desc"}
	if got := opt.DisplayText(); got != "text" {
		t.Fatalf("expected text field, got %q", got)
	}

	opt.Text = ""
	if got := opt.DisplayText(); got != "label" {
		t.Fatalf("expected label field, got %q", got)
	}

	opt.Label = ""
	if got := opt.DisplayText(); got != "desc" {
		t.Fatalf("expected description field, got %q", got)
	}

	opt.Description = ""
	if got := opt.DisplayText(); got != "3AB" {
		t.Fatalf("expected raw code fallback, got %q", got)
	}
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`{
		"001": {"category": "base", "text": "X5"},
		"3AB": {"category": "standard", "description": "Seat heating", "prices": [
			{"from": "2023-01-01", "price": 100},
			{"from": "2024-01-01", "price": 150}
		]},
		"999": {"category": "weird"}
	}`)

	cat, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(cat) != 3 {
		t.Fatalf("expected 3 options, got %d", len(cat))
	}

	base := cat["001"]
	if base.Category != CategoryBase || base.DisplayText() != "X5" {
		t.Fatalf("unexpected base option: %+v", base)
	}

	std := cat["3AB"]
	if std.Category != CategoryStandard {
		t.Fatalf("expected standard category, got %v", std.Category)
	}
	if len(std.Prices) != 2 {
		t.Fatalf("expected 2 price rules, got %d", len(std.Prices))
	}
	if !std.Prices[1].Price.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected rule price: %s", std.Prices[1].Price)
	}
	if std.Prices[0].EffectiveFrom.After(std.Prices[1].EffectiveFrom) {
		t.Fatal("rules not in ascending date order")
	}

	if cat["999"].Category != CategoryUnrecognized {
		t.Fatalf("expected unrecognized category, got %v", cat["999"].Category)
	}
}

func TestParseCatalogBadDate(t *testing.T) {
	_, err := Parse([]byte(`{"3AB": {"category": "standard", "prices": [{"from": "01.01.2023", "price": 1}]}}`))
	if err == nil {
		t.Fatal("expected error for malformed rule date")
	}
}
