// Package currency formats amounts in the single fixed currency of a
// wedding. There is no conversion, the currency is display-only.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Validate checks that code is a well-formed ISO 4217 currency code.
func Validate(code string) error {
	_, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("%q is not a valid ISO 4217 currency code: %w", code, err)
	}

	return nil
}

// Format renders an amount with the ISO code of the given currency and
// grouped integer digits, e.g. "UGX 500,000".
//
// Amounts are displayed without decimals since contributions are
// recorded in whole currency units. An unknown currency code formats
// the bare amount.
func Format(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return amount.StringFixed(0)
	}

	p := message.NewPrinter(language.English)
	formatted := p.Sprint(number.Decimal(amount.Round(0).InexactFloat64(), number.MaxFractionDigits(0)))

	return unit.String() + " " + formatted
}
