package vehicle

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/catalog"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		"001": {Code: "001", Category: catalog.CategoryBase, Text: "X5"},
		"3AB": {Code: "3AB", Category: catalog.CategoryStandard, Description: "Seat heating"},
		"3AD": {Code: "3AD", Category: catalog.CategoryOptional, Label: "M steering wheel"},
		"S7A": {Code: "S7A", Category: catalog.CategorySecurity, Text: "Armored glass"},
		"999": {Code: "999", Category: catalog.CategoryUnrecognized},
	}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNormalizeBuckets(t *testing.T) {
	overrides := map[string]decimal.Decimal{
		"3AB": money("100"),
		"3AD": money("3000.5"),
		"S7A": money("25000"),
	}

	cfg := Normalize([]string{"001", "3AB", "3AD", "S7A"}, overrides, testCatalog())

	if len(cfg.Base) != 1 || len(cfg.Standard) != 1 || len(cfg.Optional) != 1 || len(cfg.Security) != 1 {
		t.Fatalf("unexpected bucket sizes: %+v", cfg)
	}
	if cfg.Base[0].Code != "001" || cfg.Base[0].Text != "X5" {
		t.Fatalf("unexpected base line: %+v", cfg.Base[0])
	}
	if cfg.Standard[0].Text != "Seat heating" {
		t.Fatalf("expected description fallback text, got %q", cfg.Standard[0].Text)
	}
	if cfg.Optional[0].Text != "M steering wheel" {
		t.Fatalf("expected label fallback text, got %q", cfg.Optional[0].Text)
	}
	if !cfg.TotalPrice.Equal(money("28100.5")) {
		t.Fatalf("total = %s, want 28100.5", cfg.TotalPrice)
	}
}

func TestNormalizeBasePriceForcedToZero(t *testing.T) {
	overrides := map[string]decimal.Decimal{"001": money("99999")}

	cfg := Normalize([]string{"001"}, overrides, testCatalog())

	if !cfg.Base[0].Price.IsZero() {
		t.Fatalf("base price = %s, want 0", cfg.Base[0].Price)
	}
	if !cfg.TotalPrice.IsZero() {
		t.Fatalf("base override leaked into total: %s", cfg.TotalPrice)
	}
}

func TestNormalizeUnknownCodesSilentlyDropped(t *testing.T) {
	overrides := map[string]decimal.Decimal{"ZZZ": money("500")}

	cfg := Normalize([]string{"ZZZ", "3AB"}, overrides, testCatalog())

	if len(cfg.Standard) != 1 {
		t.Fatalf("expected only 3AB in standard, got %+v", cfg.Standard)
	}
	if len(cfg.Base) != 0 || len(cfg.Optional) != 0 || len(cfg.Security) != 0 {
		t.Fatalf("unknown code leaked into a bucket: %+v", cfg)
	}
	if !cfg.TotalPrice.IsZero() {
		t.Fatalf("unknown code contributed to total: %s", cfg.TotalPrice)
	}
}

// Cataloged codes with an unrecognized category land in no bucket but their
// override price still counts toward the total. Locked-in behavior.
func TestNormalizeUnrecognizedCategoryStillCounts(t *testing.T) {
	overrides := map[string]decimal.Decimal{"999": money("42")}

	cfg := Normalize([]string{"999"}, overrides, testCatalog())

	if len(cfg.Base)+len(cfg.Standard)+len(cfg.Optional)+len(cfg.Security) != 0 {
		t.Fatalf("unrecognized category leaked into a bucket: %+v", cfg)
	}
	if !cfg.TotalPrice.Equal(money("42")) {
		t.Fatalf("total = %s, want 42", cfg.TotalPrice)
	}
}

func TestNormalizeDuplicateBaseCodesKeepDuplicateLines(t *testing.T) {
	cfg := Normalize([]string{"001", "001"}, nil, testCatalog())

	if len(cfg.Base) != 2 {
		t.Fatalf("expected duplicate base lines, got %d", len(cfg.Base))
	}
}

func TestNormalizePreservesInputOrder(t *testing.T) {
	cat := testCatalog()
	cat["4XX"] = catalog.Option{Code: "4XX", Category: catalog.CategoryStandard, Text: "Later"}

	cfg := Normalize([]string{"4XX", "3AB"}, nil, cat)

	if cfg.Standard[0].Code != "4XX" || cfg.Standard[1].Code != "3AB" {
		t.Fatalf("input order not preserved: %+v", cfg.Standard)
	}
}

func TestNormalizeMissingOverrideDefaultsToZero(t *testing.T) {
	cfg := Normalize([]string{"3AB"}, nil, testCatalog())

	if !cfg.Standard[0].Price.IsZero() {
		t.Fatalf("price = %s, want 0", cfg.Standard[0].Price)
	}
	if !cfg.TotalPrice.IsZero() {
		t.Fatalf("total = %s, want 0", cfg.TotalPrice)
	}
}

// End to end: parse overrides from priced lines elsewhere, then normalize the
// scenario from the reference catalog.
func TestNormalizeEndToEndScenario(t *testing.T) {
	cat := catalog.Catalog{
		"001": {Code: "001", Category: catalog.CategoryBase, Text: "X5"},
		"3AB": {Code: "3AB", Category: catalog.CategoryStandard},
		"999": {Code: "999", Category: catalog.CategoryUnrecognized},
	}
	overrides := map[string]decimal.Decimal{"3AB": money("100")}

	cfg := Normalize([]string{"001", "3AB", "999"}, overrides, cat)

	if len(cfg.Base) != 1 || cfg.Base[0].Code != "001" || cfg.Base[0].Text != "X5" || !cfg.Base[0].Price.IsZero() {
		t.Fatalf("unexpected base bucket: %+v", cfg.Base)
	}
	if len(cfg.Standard) != 1 || cfg.Standard[0].Code != "3AB" || !cfg.Standard[0].Price.Equal(money("100")) {
		t.Fatalf("unexpected standard bucket: %+v", cfg.Standard)
	}
	if cfg.Standard[0].Text != "3AB" {
		t.Fatalf("expected raw code fallback text, got %q", cfg.Standard[0].Text)
	}
	if len(cfg.Optional) != 0 || len(cfg.Security) != 0 {
		t.Fatalf("unexpected non-empty buckets: %+v", cfg)
	}
	// 999 is cataloged but bucketless and has no override, so it adds zero.
	if !cfg.TotalPrice.Equal(money("100")) {
		t.Fatalf("total = %s, want 100", cfg.TotalPrice)
	}
}
