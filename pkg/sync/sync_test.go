package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/catalog"
)

const remoteDoc = `{
	"001": {"category": "base", "text": "X5"},
	"3AB": {"category": "standard", "description": "Seat heating", "prices": [
		{"from": "2024-01-01", "price": 150},
		{"from": "2023-01-01", "price": "100.50"},
		{"from": "not-a-date", "price": 1},
		{"from": "2025-01-01", "price": "abc"}
	]},
	"999": {"category": "weird"}
}`

func TestFetch(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(remoteDoc))
	}))
	defer srv.Close()

	opts, err := Fetch(context.Background(), Config{URL: srv.URL, Token: "secret"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}

	byCode := make(map[string]catalog.Option)
	for _, o := range opts {
		byCode[o.Code] = o
	}

	std := byCode["3AB"]
	if std.Category != catalog.CategoryStandard {
		t.Fatalf("unexpected category: %v", std.Category)
	}
	// Bad date and bad price rules are skipped; survivors come back sorted.
	if len(std.Prices) != 2 {
		t.Fatalf("expected 2 usable rules, got %d: %+v", len(std.Prices), std.Prices)
	}
	if !std.Prices[0].Price.Equal(decimal.RequireFromString("100.50")) {
		t.Fatalf("rules not sorted ascending: %+v", std.Prices)
	}
	if !std.Prices[1].Price.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected second rule: %+v", std.Prices[1])
	}

	if byCode["999"].Category != catalog.CategoryUnrecognized {
		t.Fatalf("expected unrecognized category for 999")
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), Config{URL: srv.URL}); err == nil {
		t.Fatal("expected error for HTTP 403")
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	if _, err := decode([]byte(`[1,2,3]`)); err == nil {
		t.Fatal("expected error for array document")
	}
}
