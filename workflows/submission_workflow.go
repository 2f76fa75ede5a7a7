package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"delivery-checkout-system/activities"
	"delivery-checkout-system/models"
	"delivery-checkout-system/pricing"
)

const (
	SubmissionWorkflowName = "SubmissionWorkflow"
)

// SubmissionWorkflow is a child workflow that performs the terminal,
// at-most-once order submission: hand the order to the gateway, then notify
// the customer. Notification failures do not fail the submission.
func SubmissionWorkflow(ctx workflow.Context, order models.Order) (string, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("SubmissionWorkflow started", "order_id", order.ID, "total", order.Summary.Total)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 20 * time.Second,
		HeartbeatTimeout:    5 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    1 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var act *activities.Activities

	var confirmation string
	err := workflow.ExecuteActivity(ctx, act.PlaceOrder, order).Get(ctx, &confirmation)
	if err != nil {
		logger.Error("Order placement failed", "order_id", order.ID, "error", err)
		return "", fmt.Errorf("order placement failed: %w", err)
	}

	logger.Info("Order placed", "order_id", order.ID, "confirmation", confirmation)

	message := fmt.Sprintf("Your order has been placed. Confirmation: %s. Total charged: %s", confirmation, pricing.FormatUSD(order.Summary.Total))
	if err := workflow.ExecuteActivity(ctx, act.NotifyCustomer, order, message).Get(ctx, nil); err != nil {
		logger.Warn("Failed to notify customer", "order_id", order.ID, "error", err)
	}

	return confirmation, nil
}
