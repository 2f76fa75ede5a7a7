package activities

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.temporal.io/sdk/activity"

	"delivery-checkout-system/models"
)

// Activities contains the checkout session's external-boundary activities.
type Activities struct {
	httpClient     *http.Client
	gatewayBaseURL string
}

// NewActivities creates a new Activities instance targeting the order
// gateway base URL.
func NewActivities(gatewayBaseURL string) *Activities {
	return &Activities{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		gatewayBaseURL: gatewayBaseURL,
	}
}

// placementResponse is the gateway's acknowledgement of a placed order.
type placementResponse struct {
	Accepted     bool   `json:"accepted"`
	Confirmation string `json:"confirmation"`
	Message      string `json:"message"`
}

// PlaceOrder hands a submitted order to the order gateway and returns the
// gateway's confirmation code. This is the single external collaborator of
// the checkout session; it is invoked at most once per session.
func (a *Activities) PlaceOrder(ctx context.Context, order models.Order) (string, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Placing order", "order_id", order.ID, "total", order.Summary.Total)

	jsonData, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order: %w", err)
	}

	url := fmt.Sprintf("%s/orders", a.gatewayBaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create placement request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	activity.RecordHeartbeat(ctx, "calling order gateway")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call order gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("order gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var placement placementResponse
	if err := json.NewDecoder(resp.Body).Decode(&placement); err != nil {
		return "", fmt.Errorf("failed to decode placement response: %w", err)
	}

	activity.RecordHeartbeat(ctx, "placement response received")

	if !placement.Accepted {
		return "", fmt.Errorf("order rejected by gateway: %s", placement.Message)
	}

	logger.Info("Order placed successfully", "order_id", order.ID, "confirmation", placement.Confirmation)
	return placement.Confirmation, nil
}

// NotifyCustomer sends a notification to the customer.
func (a *Activities) NotifyCustomer(ctx context.Context, order models.Order, message string) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Notifying customer", "order_id", order.ID, "customer_id", order.CustomerID, "message", message)

	// Simulated delivery; real channels (email, push) live outside this core.
	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}

	logger.Info("Customer notified successfully", "order_id", order.ID)
	return nil
}

// RecordAbandonment records a session that ended without submission so
// marketing can follow up. In-progress form state is discarded with the
// session; only the priced cart is kept.
func (a *Activities) RecordAbandonment(ctx context.Context, order models.Order) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Recording abandoned checkout", "customer_id", order.CustomerID, "status", order.Status, "subtotal", order.Summary.Subtotal)

	select {
	case <-time.After(250 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}

	activity.RecordHeartbeat(ctx, "abandonment recorded")
	return nil
}
