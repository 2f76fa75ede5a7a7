package promo

import "errors"

var (
	// ErrPromoNotFound means the entered code matches nothing in the catalog.
	ErrPromoNotFound = errors.New("promo code not found")
	// ErrPromoExpired means the code exists but its expiry date has passed.
	ErrPromoExpired = errors.New("promo code expired")
	// ErrPromoMinimumNotMet means the order subtotal is below the code's
	// minimum order threshold.
	ErrPromoMinimumNotMet = errors.New("order subtotal below promo minimum")
)
