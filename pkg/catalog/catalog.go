// Package catalog holds the option metadata catalog: for every option code the
// equipment category, descriptive texts and optional date-scoped price rules.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an option into one of the quotation buckets.
type Category int

const (
	CategoryUnrecognized Category = iota
	CategoryBase
	CategoryStandard
	CategoryOptional
	CategorySecurity
)

var categoryNames = map[Category]string{
	CategoryBase:     "base",
	CategoryStandard: "standard",
	CategoryOptional: "optional",
	CategorySecurity: "security",
}

// ParseCategory maps a raw category string to its Category. Anything outside
// the four known buckets becomes CategoryUnrecognized; the normalizer keeps
// such options out of every bucket without failing.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base":
		return CategoryBase
	case "standard":
		return CategoryStandard
	case "optional":
		return CategoryOptional
	case "security":
		return CategorySecurity
	default:
		return CategoryUnrecognized
	}
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unrecognized"
}

// Rule is a catalog price valid from EffectiveFrom onward, until superseded by
// a later rule. Rule lists must be ordered by ascending EffectiveFrom:
// resolution keeps the last qualifying rule in list order, so an out-of-order
// list yields the price of the rule listed last, not the one dated last.
type Rule struct {
	EffectiveFrom time.Time
	Price         decimal.Decimal
}

// Option is a single catalog entry. Code is unique within a catalog snapshot.
type Option struct {
	Code        string
	Category    Category
	Type        string
	Text        string
	Label       string
	Description string
	Prices      []Rule
}

// DisplayText picks the human-readable text for an option, probing the
// descriptive fields in a fixed order and falling back to the raw code.
func (o Option) DisplayText() string {
	for _, s := range []string{o.Text, o.Label, o.Description} {
		if s != "" {
			return s
		}
	}
	return o.Code
}

// Catalog maps option codes to their metadata. It is a read-only snapshot:
// loaded once, never mutated during resolution.
type Catalog map[string]Option

// rawOption mirrors the options_meta.json entry shape.
type rawOption struct {
	Category    string `json:"category"`
	Type        string `json:"type"`
	Text        string `json:"text"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Prices      []struct {
		From  string          `json:"from"`
		Price decimal.Decimal `json:"price"`
	} `json:"prices"`
}

// Parse decodes a JSON catalog document keyed by option code.
func Parse(data []byte) (Catalog, error) {
	var raw map[string]rawOption
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	cat := make(Catalog, len(raw))
	for code, r := range raw {
		opt := Option{
			Code:        code,
			Category:    ParseCategory(r.Category),
			Type:        r.Type,
			Text:        r.Text,
			Label:       r.Label,
			Description: r.Description,
		}
		for _, p := range r.Prices {
			from, err := time.Parse("2006-01-02", p.From)
			if err != nil {
				return nil, fmt.Errorf("option %s: bad price rule date %q: %w", code, p.From, err)
			}
			opt.Prices = append(opt.Prices, Rule{EffectiveFrom: from, Price: p.Price})
		}
		cat[code] = opt
	}
	return cat, nil
}

// LoadFile reads a JSON catalog file from disk.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
