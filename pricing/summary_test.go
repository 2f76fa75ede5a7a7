package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"delivery-checkout-system/promo"
)

var (
	testNow  = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	testFees = FeeSchedule{
		DeliveryFee: decimal.RequireFromString("4.99"),
		TaxRate:     decimal.RequireFromString("0.13"),
	}
)

func testItems() map[string]LineItem {
	return map[string]LineItem{
		"pizza": {ID: "pizza", Name: "Margherita Pizza", UnitPrice: decimal.RequireFromString("14.99"), Quantity: 2},
		"bread": {ID: "bread", Name: "Garlic Bread", UnitPrice: decimal.RequireFromString("4.99"), Quantity: 1},
	}
}

func TestComputeSummaryNoPromo(t *testing.T) {
	summary := ComputeSummary(testItems(), testFees, nil, testNow)

	assert.Equal(t, "34.97", summary.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", summary.DiscountAmount.StringFixed(2))
	assert.Equal(t, "34.97", summary.TaxableAmount.StringFixed(2))
	assert.Equal(t, "4.55", summary.Tax.StringFixed(2))
	assert.Equal(t, "4.99", summary.DeliveryFee.StringFixed(2))
	assert.Equal(t, "44.51", summary.Total.StringFixed(2))
}

func TestComputeSummaryIdempotent(t *testing.T) {
	items := testItems()
	p := &promo.PromoCode{
		Code:      "WELCOME20",
		Kind:      promo.KindPercentage,
		Value:     decimal.RequireFromString("20"),
		ExpiresAt: testNow.AddDate(0, 1, 0),
	}

	first := ComputeSummary(items, testFees, p, testNow)
	second := ComputeSummary(items, testFees, p, testNow)
	assert.Equal(t, first, second)
}

func TestComputeSummaryZeroQuantityExcluded(t *testing.T) {
	items := testItems()
	items["dessert"] = LineItem{ID: "dessert", UnitPrice: decimal.RequireFromString("6.50"), Quantity: 0}

	summary := ComputeSummary(items, testFees, nil, testNow)
	assert.Equal(t, "34.97", summary.Subtotal.StringFixed(2))
}

func TestComputeSummaryEmptyOrder(t *testing.T) {
	summary := ComputeSummary(map[string]LineItem{}, testFees, nil, testNow)

	assert.Equal(t, "0.00", summary.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", summary.Tax.StringFixed(2))
	// The flat delivery fee is charged even for an empty order.
	assert.Equal(t, "4.99", summary.DeliveryFee.StringFixed(2))
	assert.Equal(t, "4.99", summary.Total.StringFixed(2))
}

func TestComputeSummaryFixedDiscount(t *testing.T) {
	items := map[string]LineItem{
		"meal": {ID: "meal", UnitPrice: decimal.RequireFromString("25.00"), Quantity: 2},
	}
	p := &promo.PromoCode{
		Code:             "SAVE10",
		Kind:             promo.KindFixedAmount,
		Value:            decimal.RequireFromString("10"),
		MinOrderSubtotal: decimal.RequireFromString("50"),
		ExpiresAt:        testNow.AddDate(0, 1, 0),
	}

	summary := ComputeSummary(items, testFees, p, testNow)
	assert.Equal(t, "50.00", summary.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", summary.DiscountAmount.StringFixed(2))
	assert.Equal(t, "40.00", summary.TaxableAmount.StringFixed(2))
	assert.Equal(t, "5.20", summary.Tax.StringFixed(2))
	assert.Equal(t, "50.19", summary.Total.StringFixed(2))
}

func TestComputeSummaryDiscountCappedAtSubtotal(t *testing.T) {
	items := map[string]LineItem{
		"snack": {ID: "snack", UnitPrice: decimal.RequireFromString("3.00"), Quantity: 1},
	}
	p := &promo.PromoCode{
		Code:      "BIGOFF",
		Kind:      promo.KindFixedAmount,
		Value:     decimal.RequireFromString("10"),
		ExpiresAt: testNow.AddDate(0, 1, 0),
	}

	summary := ComputeSummary(items, testFees, p, testNow)
	assert.Equal(t, "3.00", summary.DiscountAmount.StringFixed(2))
	assert.Equal(t, "0.00", summary.TaxableAmount.StringFixed(2))
	assert.Equal(t, "0.00", summary.Tax.StringFixed(2))
	// Only the delivery fee remains.
	assert.Equal(t, "4.99", summary.Total.StringFixed(2))
}

func TestComputeSummaryFreeDelivery(t *testing.T) {
	p := &promo.PromoCode{
		Code:      "FREESHIP",
		Kind:      promo.KindFreeDelivery,
		ExpiresAt: testNow.AddDate(0, 1, 0),
	}

	summary := ComputeSummary(testItems(), testFees, p, testNow)
	assert.Equal(t, "0.00", summary.DiscountAmount.StringFixed(2))
	assert.Equal(t, "0.00", summary.DeliveryFee.StringFixed(2))
	// Tax still applies to the full subtotal; the fee is never taxed.
	assert.Equal(t, "4.55", summary.Tax.StringFixed(2))
	assert.Equal(t, "39.52", summary.Total.StringFixed(2))
}

func TestComputeSummaryExpiredPromoHasNoEffect(t *testing.T) {
	p := &promo.PromoCode{
		Code:      "FREESHIP",
		Kind:      promo.KindFreeDelivery,
		ExpiresAt: testNow.AddDate(0, 0, -1),
	}

	withExpired := ComputeSummary(testItems(), testFees, p, testNow)
	without := ComputeSummary(testItems(), testFees, nil, testNow)
	assert.Equal(t, without, withExpired)
}

// Increasing any line item's quantity never decreases the total.
func TestComputeSummaryTotalMonotonic(t *testing.T) {
	items := testItems()
	prev := ComputeSummary(items, testFees, nil, testNow).Total

	for i := 0; i < 20; i++ {
		item := items["pizza"]
		item.Quantity++
		items["pizza"] = item

		total := ComputeSummary(items, testFees, nil, testNow).Total
		assert.True(t, total.GreaterThanOrEqual(prev),
			"total %s decreased below %s at quantity %d", total, prev, item.Quantity)
		prev = total
	}
}
