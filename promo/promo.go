package promo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies how a promo code reduces the order price.
type Kind string

const (
	KindPercentage   Kind = "PERCENTAGE"
	KindFixedAmount  Kind = "FIXED_AMOUNT"
	KindFreeDelivery Kind = "FREE_DELIVERY"
)

// PromoCode is a statically defined discount entitlement. Applying a code
// never consumes it; evaluation only derives a discount amount.
type PromoCode struct {
	Code string `json:"code"`
	Kind Kind   `json:"kind"`

	// Value holds percentage points for KindPercentage and a currency
	// amount for KindFixedAmount. Ignored for KindFreeDelivery.
	Value decimal.Decimal `json:"value"`

	// MinOrderSubtotal below which the promo is ineligible. Zero means no
	// threshold.
	MinOrderSubtotal decimal.Decimal `json:"min_order_subtotal"`

	// MaxDiscountAmount caps the discount granted by a percentage promo.
	// Zero means no cap.
	MaxDiscountAmount decimal.Decimal `json:"max_discount_amount"`

	ExpiresAt time.Time `json:"expires_at"`
}

// Eligible reports why the promo cannot apply at the given subtotal and
// time, so the UI can show distinct messaging for expired vs below-minimum.
func (p PromoCode) Eligible(subtotal decimal.Decimal, now time.Time) error {
	if now.After(p.ExpiresAt) {
		return ErrPromoExpired
	}
	if subtotal.LessThan(p.MinOrderSubtotal) {
		return ErrPromoMinimumNotMet
	}
	return nil
}

// FreeDelivery reports whether applying this promo waives the delivery fee.
func (p PromoCode) FreeDelivery() bool {
	return p.Kind == KindFreeDelivery
}

// Discount returns the currency amount taken off the subtotal. It fails
// closed: an expired or ineligible promo yields zero rather than an error,
// so order computation proceeds unaffected.
//
// The result is always within [0, subtotal]. Free-delivery promos return
// zero here; their benefit is the fee waiver applied by the aggregator.
func (p PromoCode) Discount(subtotal decimal.Decimal, now time.Time) decimal.Decimal {
	if p.Eligible(subtotal, now) != nil {
		return decimal.Zero
	}

	switch p.Kind {
	case KindPercentage:
		raw := subtotal.Mul(p.Value).Div(decimal.NewFromInt(100)).Round(2)
		if p.MaxDiscountAmount.IsPositive() && raw.GreaterThan(p.MaxDiscountAmount) {
			raw = p.MaxDiscountAmount
		}
		return capAtSubtotal(raw, subtotal)
	case KindFixedAmount:
		return capAtSubtotal(p.Value, subtotal)
	default:
		return decimal.Zero
	}
}

// capAtSubtotal bounds a discount so the taxable amount can never go
// negative.
func capAtSubtotal(discount, subtotal decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}
