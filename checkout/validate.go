package checkout

import (
	"fmt"
	"strings"
)

// FieldError is an inline, per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports why a step refused to advance. It blocks
// advancement only; it never corrupts already-computed order state.
type ValidationError struct {
	Step   Step         `json:"step"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("step %s invalid: %s", e.Step, strings.Join(names, ", "))
}

// Validate returns the missing-field errors for a step. The review step has
// no independent input and is always valid.
func Validate(step Step, form FormState) []FieldError {
	var fields []FieldError
	switch step {
	case StepDelivery:
		if strings.TrimSpace(form.Street) == "" {
			fields = append(fields, FieldError{Field: "street", Message: "street is required"})
		}
		if strings.TrimSpace(form.City) == "" {
			fields = append(fields, FieldError{Field: "city", Message: "city is required"})
		}
	case StepPayment:
		if strings.TrimSpace(form.PaymentMethodID) == "" {
			fields = append(fields, FieldError{Field: "payment_method_id", Message: "select a payment method"})
		}
	}
	return fields
}
