package activities

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"delivery-checkout-system/models"
	"delivery-checkout-system/pricing"
)

func testOrder(id string) models.Order {
	return models.Order{
		ID:         id,
		CustomerID: "customer-1",
		Items: []models.OrderItem{
			{
				ItemID:    "pizza",
				Name:      "Margherita Pizza",
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("14.99"),
				LineTotal: decimal.RequireFromString("29.98"),
			},
		},
		Summary: pricing.OrderSummary{
			Subtotal: decimal.RequireFromString("29.98"),
			Total:    decimal.RequireFromString("38.87"),
		},
		Status: models.OrderStatusSubmitted,
	}
}

func TestPlaceOrder(t *testing.T) {
	tests := []struct {
		name          string
		order         models.Order
		mockHandler   func(w http.ResponseWriter, r *http.Request)
		wantErr       bool
		errorContains string
		want          string
		verifyRequest bool
	}{
		{
			name:  "Success - Order Accepted",
			order: testOrder("ORDER-001"),
			mockHandler: func(w http.ResponseWriter, r *http.Request) {
				resp := placementResponse{Accepted: true, Confirmation: "CONF-001"}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(resp)
			},
			want:          "CONF-001",
			verifyRequest: true,
		},
		{
			name:  "Failure - Order Rejected",
			order: testOrder("ORDER-002"),
			mockHandler: func(w http.ResponseWriter, r *http.Request) {
				resp := placementResponse{Accepted: false, Message: "restaurant closed"}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(resp)
			},
			wantErr:       true,
			errorContains: "restaurant closed",
		},
		{
			name:  "Failure - Server Error",
			order: testOrder("ORDER-003"),
			mockHandler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Internal Server Error"))
			},
			wantErr:       true,
			errorContains: "status 500",
		},
		{
			name:  "Success - Created Status",
			order: testOrder("ORDER-004"),
			mockHandler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(placementResponse{Accepted: true, Confirmation: "CONF-004"})
			},
			want: "CONF-004",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testSuite := &testsuite.WorkflowTestSuite{}
			env := testSuite.NewTestActivityEnvironment()

			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.verifyRequest {
					assert.Equal(t, "/orders", r.URL.Path)
					assert.Equal(t, "POST", r.Method)
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

					var got models.Order
					err := json.NewDecoder(r.Body).Decode(&got)
					require.NoError(t, err)
					assert.Equal(t, tt.order.ID, got.ID)
					assert.Equal(t, tt.order.CustomerID, got.CustomerID)
				}

				tt.mockHandler(w, r)
			}))
			defer mockServer.Close()

			act := NewActivities(mockServer.URL)
			env.RegisterActivity(act.PlaceOrder)

			val, err := env.ExecuteActivity(act.PlaceOrder, tt.order)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}
			require.NoError(t, err)

			var confirmation string
			require.NoError(t, val.Get(&confirmation))
			assert.Equal(t, tt.want, confirmation)
		})
	}
}

func TestNotifyCustomer(t *testing.T) {
	tests := []struct {
		name    string
		order   models.Order
		message string
	}{
		{name: "Order Placed", order: testOrder("ORDER-005"), message: "Your order has been placed"},
		{name: "Empty Message", order: testOrder("ORDER-006"), message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testSuite := &testsuite.WorkflowTestSuite{}
			env := testSuite.NewTestActivityEnvironment()

			act := NewActivities("http://localhost:8081")
			env.RegisterActivity(act.NotifyCustomer)

			_, err := env.ExecuteActivity(act.NotifyCustomer, tt.order, tt.message)
			assert.NoError(t, err)
		})
	}
}

func TestRecordAbandonment(t *testing.T) {
	testSuite := &testsuite.WorkflowTestSuite{}
	env := testSuite.NewTestActivityEnvironment()

	act := NewActivities("http://localhost:8081")
	env.RegisterActivity(act.RecordAbandonment)

	order := testOrder("")
	order.Status = models.OrderStatusAbandoned

	_, err := env.ExecuteActivity(act.RecordAbandonment, order)
	assert.NoError(t, err)
}
