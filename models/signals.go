package models

import "delivery-checkout-system/checkout"

// QuantityChange is the payload of an increment/decrement signal.
type QuantityChange struct {
	ItemID string `json:"item_id"`
	Delta  int    `json:"delta"`
}

// SetQuantityRequest replaces an item's quantity outright.
type SetQuantityRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// PromoRequest carries a user-entered promo code.
type PromoRequest struct {
	Code string `json:"code"`
}

// FormUpdate replaces the checkout form fields wholesale, the way a UI
// submits its current form values on change.
type FormUpdate struct {
	Form checkout.FormState `json:"form"`
}
