// Package checkout models the linear multi-step checkout flow:
// delivery -> payment -> review -> submitted. There is no branching and no
// skipping; each step gates advancement on its required fields.
package checkout

// Step is a position in the checkout flow.
type Step int

const (
	StepDelivery Step = iota
	StepPayment
	StepReview
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepDelivery:
		return "DELIVERY"
	case StepPayment:
		return "PAYMENT"
	case StepReview:
		return "REVIEW"
	case StepSubmitted:
		return "SUBMITTED"
	default:
		return "UNKNOWN"
	}
}

// FormState carries the user-entered checkout fields. Navigating away
// discards it; there is no draft persistence.
type FormState struct {
	Street          string `json:"street"`
	City            string `json:"city"`
	PaymentMethodID string `json:"payment_method_id"`
}

// Flow tracks the current checkout step.
type Flow struct {
	current Step
}

// NewFlow starts a flow at the delivery step.
func NewFlow() *Flow {
	return &Flow{current: StepDelivery}
}

// Current returns the step the flow is on.
func (f *Flow) Current() Step {
	return f.current
}

// Submitted reports whether the flow reached its terminal step.
func (f *Flow) Submitted() bool {
	return f.current == StepSubmitted
}

// CanAdvance reports whether the current step's required fields are present.
func (f *Flow) CanAdvance(form FormState) bool {
	return len(Validate(f.current, form)) == 0
}

// Next advances to the following step. It returns a *ValidationError and
// stays put when the current step's required fields are missing. Advancing
// from the review step marks the flow submitted; the caller performs the
// terminal submission side effect.
func (f *Flow) Next(form FormState) error {
	if fields := Validate(f.current, form); len(fields) > 0 {
		return &ValidationError{Step: f.current, Fields: fields}
	}
	if f.current < StepSubmitted {
		f.current++
	}
	return nil
}

// Back moves to the previous step and reports true. From the delivery step
// there is no previous step: Back reports false, meaning the user exits the
// flow entirely (back to the cart).
func (f *Flow) Back() bool {
	if f.current == StepDelivery {
		return false
	}
	f.current--
	return true
}
