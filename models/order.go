package models

import (
	"time"

	"github.com/shopspring/decimal"

	"delivery-checkout-system/checkout"
	"delivery-checkout-system/pricing"
	"delivery-checkout-system/promo"
)

// Order is the completed order handed to the submission boundary.
type Order struct {
	ID         string               `json:"id"`
	CustomerID string               `json:"customer_id"`
	Items      []OrderItem          `json:"items"`
	Summary    pricing.OrderSummary `json:"summary"`
	PromoCode  string               `json:"promo_code,omitempty"`
	Delivery   checkout.FormState   `json:"delivery"`
	Status     OrderStatus          `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// OrderItem is a single priced line in an order.
type OrderItem struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderStatus represents the lifecycle of a checkout session's order.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusSubmitted OrderStatus = "SUBMITTED"
	OrderStatusAbandoned OrderStatus = "ABANDONED"
	OrderStatusExpired   OrderStatus = "EXPIRED"
)

// MenuItem is a catalog entry the customer can order.
type MenuItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CheckoutInput starts a checkout session workflow.
type CheckoutInput struct {
	CustomerID     string              `json:"customer_id"`
	Menu           []MenuItem          `json:"menu"`
	Fees           pricing.FeeSchedule `json:"fees"`
	Promos         []promo.PromoCode   `json:"promos"`
	SessionTimeout time.Duration       `json:"session_timeout"`
}

// CheckoutState is the query snapshot of a running checkout session. The
// summary inside is recomputed after every signal, never patched.
type CheckoutState struct {
	Step        string                `json:"step"`
	StepValid   bool                  `json:"step_valid"`
	FieldErrors []checkout.FieldError `json:"field_errors,omitempty"`
	Items       []OrderItem           `json:"items"`
	Summary     pricing.OrderSummary  `json:"summary"`
	PromoCode   string                `json:"promo_code,omitempty"`
	Notice      string                `json:"notice,omitempty"`
	LastUpdated time.Time             `json:"last_updated"`
}

// CheckoutResult is the workflow's terminal outcome.
type CheckoutResult struct {
	Outcome      Outcome              `json:"outcome"`
	OrderID      string               `json:"order_id,omitempty"`
	Confirmation string               `json:"confirmation,omitempty"`
	Summary      pricing.OrderSummary `json:"summary"`
}

// Outcome names how a checkout session ended.
type Outcome string

const (
	OutcomeSubmitted Outcome = "SUBMITTED"
	OutcomeAbandoned Outcome = "ABANDONED"
	OutcomeExpired   Outcome = "EXPIRED"
)
