package workflows

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/workflow"

	"delivery-checkout-system/activities"
	"delivery-checkout-system/cart"
	"delivery-checkout-system/checkout"
	"delivery-checkout-system/models"
	"delivery-checkout-system/pricing"
	"delivery-checkout-system/promo"
)

const (
	SignalUpdateQuantity = "update-quantity"
	SignalSetQuantity    = "set-quantity"
	SignalApplyPromo     = "apply-promo"
	SignalRemovePromo    = "remove-promo"
	SignalUpdateForm     = "update-form"
	SignalNext           = "next"
	SignalBack           = "back"
	QueryState           = "state"
)

// DefaultSessionTimeout expires checkout sessions that go idle.
const DefaultSessionTimeout = 30 * time.Minute

// CheckoutWorkflow hosts one customer's checkout session. UI events arrive
// as signals; each one fully resolves to a freshly recomputed order summary
// before the next is handled. The `state` query returns the current
// snapshot. The session ends when the customer submits from the review step,
// backs out of the delivery step, or goes idle past the session timeout.
func CheckoutWorkflow(ctx workflow.Context, input models.CheckoutInput) (models.CheckoutResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutWorkflow started", "customer_id", input.CustomerID, "menu_items", len(input.Menu))

	menu := make([]pricing.LineItem, 0, len(input.Menu))
	for _, m := range input.Menu {
		menu = append(menu, pricing.LineItem{ID: m.ID, Name: m.Name, UnitPrice: m.UnitPrice})
	}
	basket := cart.New(menu, input.Fees, promo.NewCatalog(input.Promos))
	flow := checkout.NewFlow()
	var form checkout.FormState

	var state models.CheckoutState
	refresh := func(notice string) {
		state = snapshotState(basket, flow, form, notice, workflow.Now(ctx))
	}
	refresh("")

	if err := workflow.SetQueryHandler(ctx, QueryState, func() (models.CheckoutState, error) {
		return state, nil
	}); err != nil {
		return models.CheckoutResult{}, fmt.Errorf("failed to set query handler: %w", err)
	}

	sessionTimeout := input.SessionTimeout
	if sessionTimeout <= 0 {
		sessionTimeout = DefaultSessionTimeout
	}

	qtyChan := workflow.GetSignalChannel(ctx, SignalUpdateQuantity)
	setQtyChan := workflow.GetSignalChannel(ctx, SignalSetQuantity)
	promoChan := workflow.GetSignalChannel(ctx, SignalApplyPromo)
	removePromoChan := workflow.GetSignalChannel(ctx, SignalRemovePromo)
	formChan := workflow.GetSignalChannel(ctx, SignalUpdateForm)
	nextChan := workflow.GetSignalChannel(ctx, SignalNext)
	backChan := workflow.GetSignalChannel(ctx, SignalBack)

	var submitted, abandoned, expired bool

	for !submitted && !abandoned && !expired {
		selector := workflow.NewSelector(ctx)
		timerCtx, cancelTimer := workflow.WithCancel(ctx)
		selector.AddFuture(workflow.NewTimer(timerCtx, sessionTimeout), func(f workflow.Future) {
			if f.Get(timerCtx, nil) == nil {
				expired = true
			}
		})

		selector.AddReceive(qtyChan, func(ch workflow.ReceiveChannel, _ bool) {
			var change models.QuantityChange
			ch.Receive(ctx, &change)
			if _, err := basket.Adjust(change.ItemID, change.Delta); err != nil {
				logger.Warn("Quantity change rejected", "item_id", change.ItemID, "error", err)
				refresh(err.Error())
				return
			}
			refresh("")
		})

		selector.AddReceive(setQtyChan, func(ch workflow.ReceiveChannel, _ bool) {
			var req models.SetQuantityRequest
			ch.Receive(ctx, &req)
			if err := basket.SetQuantity(req.ItemID, req.Quantity); err != nil {
				logger.Warn("Set quantity rejected", "item_id", req.ItemID, "error", err)
				refresh(err.Error())
				return
			}
			refresh("")
		})

		selector.AddReceive(promoChan, func(ch workflow.ReceiveChannel, _ bool) {
			var req models.PromoRequest
			ch.Receive(ctx, &req)
			if err := basket.ApplyPromo(req.Code, workflow.Now(ctx)); err != nil {
				logger.Info("Promo rejected", "code", req.Code, "reason", err)
				refresh(err.Error())
				return
			}
			refresh(fmt.Sprintf("promo %s applied", basket.AppliedPromo().Code))
		})

		selector.AddReceive(removePromoChan, func(ch workflow.ReceiveChannel, _ bool) {
			ch.Receive(ctx, nil)
			basket.ClearPromo()
			refresh("")
		})

		selector.AddReceive(formChan, func(ch workflow.ReceiveChannel, _ bool) {
			var update models.FormUpdate
			ch.Receive(ctx, &update)
			form = update.Form
			refresh("")
		})

		selector.AddReceive(nextChan, func(ch workflow.ReceiveChannel, _ bool) {
			ch.Receive(ctx, nil)
			if err := flow.Next(form); err != nil {
				logger.Info("Step advance blocked", "step", flow.Current().String(), "error", err)
				refresh(err.Error())
				return
			}
			if flow.Submitted() {
				submitted = true
			}
			refresh("")
		})

		selector.AddReceive(backChan, func(ch workflow.ReceiveChannel, _ bool) {
			ch.Receive(ctx, nil)
			if !flow.Back() {
				// Backing out of the delivery step exits the flow.
				abandoned = true
			}
			refresh("")
		})

		selector.Select(ctx)
		cancelTimer()
	}

	summary := basket.Summary(workflow.Now(ctx))

	switch {
	case abandoned, expired:
		result := models.CheckoutResult{Outcome: models.OutcomeAbandoned, Summary: summary}
		status := models.OrderStatusAbandoned
		if expired {
			result.Outcome = models.OutcomeExpired
			status = models.OrderStatusExpired
		}
		logger.Info("Checkout session ended without submission", "customer_id", input.CustomerID, "outcome", result.Outcome)

		recordCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
			StartToCloseTimeout: 10 * time.Second,
		})
		var act *activities.Activities
		_ = workflow.ExecuteActivity(recordCtx, act.RecordAbandonment, buildOrder(input, basket, form, "", status, workflow.Now(ctx))).Get(ctx, nil)
		return result, nil
	}

	var orderID string
	if err := workflow.SideEffect(ctx, func(ctx workflow.Context) interface{} {
		return uuid.New().String()
	}).Get(&orderID); err != nil {
		return models.CheckoutResult{}, fmt.Errorf("failed to generate order id: %w", err)
	}

	order := buildOrder(input, basket, form, orderID, models.OrderStatusSubmitted, workflow.Now(ctx))
	logger.Info("Submitting order", "order_id", order.ID, "total", order.Summary.Total)

	childOptions := workflow.ChildWorkflowOptions{
		WorkflowID:               fmt.Sprintf("submission-%s", order.ID),
		WorkflowExecutionTimeout: 2 * time.Minute,
	}
	childCtx := workflow.WithChildOptions(ctx, childOptions)

	var confirmation string
	if err := workflow.ExecuteChildWorkflow(childCtx, SubmissionWorkflow, order).Get(ctx, &confirmation); err != nil {
		logger.Error("Order submission failed", "order_id", order.ID, "error", err)
		return models.CheckoutResult{}, fmt.Errorf("submission failed: %w", err)
	}

	logger.Info("CheckoutWorkflow completed", "order_id", order.ID, "confirmation", confirmation)
	return models.CheckoutResult{
		Outcome:      models.OutcomeSubmitted,
		OrderID:      order.ID,
		Confirmation: confirmation,
		Summary:      summary,
	}, nil
}

func snapshotState(basket *cart.Cart, flow *checkout.Flow, form checkout.FormState, notice string, now time.Time) models.CheckoutState {
	fieldErrors := checkout.Validate(flow.Current(), form)
	state := models.CheckoutState{
		Step:        flow.Current().String(),
		StepValid:   len(fieldErrors) == 0,
		FieldErrors: fieldErrors,
		Items:       orderItems(basket),
		Summary:     basket.Summary(now),
		Notice:      notice,
		LastUpdated: now,
	}
	if p := basket.AppliedPromo(); p != nil {
		state.PromoCode = p.Code
	}
	return state
}

func orderItems(basket *cart.Cart) []models.OrderItem {
	items := basket.Items()
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		})
	}
	return out
}

func buildOrder(input models.CheckoutInput, basket *cart.Cart, form checkout.FormState, orderID string, status models.OrderStatus, now time.Time) models.Order {
	order := models.Order{
		ID:         orderID,
		CustomerID: input.CustomerID,
		Items:      orderItems(basket),
		Summary:    basket.Summary(now),
		Delivery:   form,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if p := basket.AppliedPromo(); p != nil {
		order.PromoCode = p.Code
	}
	return order
}
