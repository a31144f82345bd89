// Package vehicle builds the normalized vehicle configuration a quotation is
// rendered from: selected option codes partitioned into equipment buckets with
// their effective prices and a running total.
package vehicle

import (
	"github.com/shopspring/decimal"

	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/catalog"
)

// Request carries the raw quotation input as supplied by the caller.
type Request struct {
	Date        string   `json:"date"`
	Model       string   `json:"model"`
	Color       string   `json:"color"`
	Interior    string   `json:"interior"`
	PricedLines []string `json:"priced_lines"`
	AllCodes    []string `json:"all_codes"`
	Format      string   `json:"format"` // "excel" | "pdf"
}

// ResolvedOption is a single output line item.
type ResolvedOption struct {
	Code  string          `json:"code"`
	Text  string          `json:"text"`
	Price decimal.Decimal `json:"price"`
}

// Configuration is the normalized vehicle representation handed to renderers.
// TotalPrice sums the non-base buckets only; base vehicle lines always carry a
// zero price because the base vehicle is billed as a separate fixed line.
type Configuration struct {
	Base       []ResolvedOption `json:"base"`
	Standard   []ResolvedOption `json:"standard"`
	Optional   []ResolvedOption `json:"optional"`
	Security   []ResolvedOption `json:"security"`
	TotalPrice decimal.Decimal  `json:"total_price"`
}

// Normalize partitions the selected codes into equipment buckets.
//
// Base-category codes are collected first, in input order, with their price
// forced to zero; overrides are never consulted for them. Every remaining code
// found in the catalog is placed by category with its override price (zero
// when no priced line supplied it). Codes absent from the catalog are dropped
// silently, as are cataloged codes with an unrecognized category - though the
// latter still add their override price to the total. That quirk predates this
// implementation and downstream documents rely on it; see
// TestNormalizeUnrecognizedCategoryStillCounts before changing it.
func Normalize(codes []string, overrides map[string]decimal.Decimal, cat catalog.Catalog) Configuration {
	cfg := Configuration{
		Base:       []ResolvedOption{},
		Standard:   []ResolvedOption{},
		Optional:   []ResolvedOption{},
		Security:   []ResolvedOption{},
		TotalPrice: decimal.Zero,
	}

	// Base pass. No dedup: a duplicated base code produces duplicate lines.
	baseCodes := make(map[string]struct{})
	for _, code := range codes {
		opt, ok := cat[code]
		if !ok || opt.Category != catalog.CategoryBase {
			continue
		}
		baseCodes[code] = struct{}{}
		cfg.Base = append(cfg.Base, ResolvedOption{
			Code:  code,
			Text:  opt.DisplayText(),
			Price: decimal.Zero,
		})
	}

	// Remainder pass over everything that is not a base code.
	for _, code := range codes {
		if _, isBase := baseCodes[code]; isBase {
			continue
		}

		opt, ok := cat[code]
		if !ok {
			continue
		}

		price := decimal.Zero
		if p, ok := overrides[code]; ok {
			price = p
		}

		item := ResolvedOption{Code: code, Text: opt.DisplayText(), Price: price}

		switch opt.Category {
		case catalog.CategoryStandard:
			cfg.Standard = append(cfg.Standard, item)
		case catalog.CategoryOptional:
			cfg.Optional = append(cfg.Optional, item)
		case catalog.CategorySecurity:
			cfg.Security = append(cfg.Security, item)
		}

		cfg.TotalPrice = cfg.TotalPrice.Add(price)
	}

	return cfg
}
