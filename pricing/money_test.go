package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Half rounds up", in: "4.545", want: "4.55"},
		{name: "Below half rounds down", in: "4.544", want: "4.54"},
		{name: "Already two places", in: "10.99", want: "10.99"},
		{name: "Long tail", in: "4.5461", want: "4.55"},
		{name: "Zero", in: "0", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundCurrency(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$44.51", FormatUSD(decimal.RequireFromString("44.51")))
	assert.Equal(t, "$10.00", FormatUSD(decimal.RequireFromString("10")))
	assert.Equal(t, "$4.55", FormatUSD(decimal.RequireFromString("4.5461")))
}

func TestClampNonNegative(t *testing.T) {
	assert.Equal(t, "0", ClampNonNegative(decimal.RequireFromString("-5.25")).String())
	assert.Equal(t, "3.5", ClampNonNegative(decimal.RequireFromString("3.5")).String())
	assert.Equal(t, "0", ClampNonNegative(decimal.Zero).String())
}

func TestAdjustQuantity(t *testing.T) {
	assert.Equal(t, 3, AdjustQuantity(2, 1))
	assert.Equal(t, 1, AdjustQuantity(2, -1))
	assert.Equal(t, 0, AdjustQuantity(0, -1))
	assert.Equal(t, 0, AdjustQuantity(1, -5))
	// No upper bound.
	assert.Equal(t, 1000001, AdjustQuantity(1000000, 1))
}

// Quantity can never go negative regardless of the delta sequence applied.
func TestAdjustQuantitySequenceFloor(t *testing.T) {
	deltas := []int{1, -3, 2, 2, -1, -10, 4, -2, -2, -2, 5}
	qty := 0
	for _, d := range deltas {
		qty = AdjustQuantity(qty, d)
		assert.GreaterOrEqual(t, qty, 0)
	}
}
