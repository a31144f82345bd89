package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/catalog"
)

// UnknownCodeError reports an option code missing from the catalog.
type UnknownCodeError struct {
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown option code: %s", e.Code)
}

// Resolved is a single option priced as of a given date.
type Resolved struct {
	Code        string          `json:"code"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// PriceAsOf returns the price effective at the given date: the last rule in
// list order whose EffectiveFrom is not after asOf. Zero when every rule
// starts later. Rules are expected in ascending EffectiveFrom order.
func PriceAsOf(rules []catalog.Rule, asOf time.Time) decimal.Decimal {
	price := decimal.Zero
	for _, r := range rules {
		if !r.EffectiveFrom.After(asOf) {
			price = r.Price
		}
	}
	return price
}

// ResolveOption looks up a single code and prices it as of the given date.
func ResolveOption(code string, cat catalog.Catalog, asOf time.Time) (Resolved, error) {
	opt, ok := cat[code]
	if !ok {
		return Resolved{}, &UnknownCodeError{Code: code}
	}

	return Resolved{
		Code:        code,
		Type:        opt.Type,
		Description: opt.Description,
		Price:       PriceAsOf(opt.Prices, asOf),
	}, nil
}

// ResolveOptions resolves every code in order, failing on the first code
// missing from the catalog.
func ResolveOptions(codes []string, cat catalog.Catalog, asOf time.Time) ([]Resolved, error) {
	resolved := make([]Resolved, 0, len(codes))
	for _, code := range codes {
		r, err := ResolveOption(code, cat, asOf)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, r)
	}
	return resolved, nil
}
