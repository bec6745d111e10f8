package locale

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount writes amount with the pack's currency conventions, for
// example "1 234,50 €" for fr-BE and "CHF 1'234.50" for fr-CH.
func (p *Pack) FormatAmount(amount decimal.Decimal) string {
	c := p.Currency
	fixed := amount.Round(c.Decimals).Abs().StringFixed(c.Decimals)

	whole, frac, _ := strings.Cut(fixed, ".")
	number := groupThousands(whole, c.ThousandsSeparator)
	if frac != "" {
		number += c.DecimalSeparator + frac
	}
	if amount.Round(c.Decimals).IsNegative() {
		number = "-" + number
	}

	if c.Position == SymbolBefore {
		return c.Symbol + " " + number
	}
	return number + " " + c.Symbol
}

// TaxAmount returns base × rate / 100 rounded to the currency precision.
func (p *Pack) TaxAmount(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(decimal.NewFromInt(100)).Round(p.Currency.Decimals)
}

// IsAllowedRate reports whether rate is one of the pack's tax options.
func (p *Pack) IsAllowedRate(rate decimal.Decimal) bool {
	for _, option := range p.Tax.Options {
		if option.Value.Equal(rate) {
			return true
		}
	}
	return false
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
