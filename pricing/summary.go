package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"delivery-checkout-system/promo"
)

// FeeSchedule holds the order-independent pricing configuration. Both values
// are inputs, never derived from line items.
type FeeSchedule struct {
	// DeliveryFee is flat and charged regardless of order size, including
	// empty orders. That matches the product behavior, not an oversight.
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	// TaxRate is a fraction in [0,1) applied to the post-discount subtotal.
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// OrderSummary is the fully derived, display-ready breakdown of an order's
// cost. It is recomputed from scratch on every change and never patched
// incrementally.
type OrderSummary struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	Tax            decimal.Decimal `json:"tax"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	Total          decimal.Decimal `json:"total"`
}

// ComputeSummary aggregates line items, the fee schedule and an optional
// applied promo into an order summary. The computation is referentially
// transparent: identical inputs always produce identical output.
func ComputeSummary(items map[string]LineItem, fees FeeSchedule, applied *promo.PromoCode, now time.Time) OrderSummary {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(item.LineTotal())
	}
	subtotal = RoundCurrency(subtotal)

	discount := decimal.Zero
	deliveryFee := fees.DeliveryFee
	if applied != nil {
		discount = applied.Discount(subtotal, now)
		if applied.FreeDelivery() && applied.Eligible(subtotal, now) == nil {
			deliveryFee = decimal.Zero
		}
	}

	taxable := ClampNonNegative(subtotal.Sub(discount))
	tax := RoundCurrency(taxable.Mul(fees.TaxRate))
	total := ClampNonNegative(RoundCurrency(taxable.Add(tax).Add(deliveryFee)))

	return OrderSummary{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		Tax:            tax,
		DeliveryFee:    deliveryFee,
		Total:          total,
	}
}
