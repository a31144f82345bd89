// Package pricing implements the two price sources of a quotation: operator
// supplied priced lines and date-effective catalog price rules.
package pricing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// priceLineRe matches lines like "3AB Sitzheizung 100" or "3AD M-Lenkrad 3000,50":
// a three character option code, a description and a trailing price with either
// a comma or a dot as decimal separator.
var priceLineRe = regexp.MustCompile(`^([A-Z0-9]{3})\s+.+?\s+(\d+(?:[.,]\d+)?)$`)

// FormatError reports a priced line that does not follow the
// "<code> <description> <price>" format.
type FormatError struct {
	Line string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid priced line format: %s", e.Line)
}

// ParseLines extracts a code -> price mapping from free-text priced lines.
// Parsing stops at the first malformed line. When a code appears more than
// once, the last price wins.
func ParseLines(lines []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal)

	for _, line := range lines {
		line = strings.TrimSpace(line)

		m := priceLineRe.FindStringSubmatch(line)
		if m == nil {
			return nil, &FormatError{Line: line}
		}

		price, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", "."))
		if err != nil {
			return nil, &FormatError{Line: line}
		}

		prices[m[1]] = price
	}

	return prices, nil
}
