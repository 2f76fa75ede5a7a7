package pricing

import "github.com/shopspring/decimal"

// FormatUSD renders an amount for display with the fixed "$" prefix and two
// decimal places. Formatting happens only at render time; computation chains
// never re-round already-formatted values.
func FormatUSD(d decimal.Decimal) string {
	return "$" + RoundCurrency(d).StringFixed(2)
}

// RoundCurrency rounds a currency amount to 2 decimal places using half-up
// rounding. Every published figure (line total, tax, total) goes through
// this so repeated additions never accumulate sub-cent drift.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ClampNonNegative returns max(0, d).
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// AdjustQuantity applies a quantity delta with a floor of zero. There is no
// upper bound: no inventory model exists to supply one.
func AdjustQuantity(current, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}
