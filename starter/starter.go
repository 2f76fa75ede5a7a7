package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/client"

	"delivery-checkout-system/checkout"
	"delivery-checkout-system/codec"
	"delivery-checkout-system/config"
	"delivery-checkout-system/models"
	"delivery-checkout-system/promo"
	"delivery-checkout-system/workflows"
)

func main() {
	customerID := flag.String("customer", "", "Customer ID (auto-generated if not provided)")
	signal := flag.String("signal", "", "Send a signal: add, remove, set-quantity, promo, remove-promo, form, next, back")
	itemID := flag.String("item", "", "Menu item ID for quantity signals")
	quantity := flag.Int("quantity", 1, "Quantity for set-quantity")
	code := flag.String("code", "", "Promo code for the promo signal")
	street := flag.String("street", "", "Street for the form signal")
	city := flag.String("city", "", "City for the form signal")
	payment := flag.String("payment", "", "Payment method ID for the form signal")
	query := flag.Bool("query", false, "Query checkout session state")
	workflowID := flag.String("workflow-id", "", "Workflow ID for signal/query operations")
	watch := flag.Bool("watch", false, "Block until the session completes and print the result")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	keyBytes, err := encryptionKey(cfg)
	if err != nil {
		log.Fatalf("Failed to prepare encryption key: %v", err)
	}

	dataConverter, err := codec.NewEncryptionDataConverter(keyBytes)
	if err != nil {
		log.Fatalf("Failed to create encryption data converter: %v", err)
	}

	c, err := client.Dial(client.Options{
		HostPort:      cfg.TemporalAddress,
		DataConverter: dataConverter,
	})
	if err != nil {
		log.Fatalf("Unable to create Temporal client: %v", err)
	}
	defer c.Close()

	ctx := context.Background()

	if *signal != "" {
		if *workflowID == "" {
			log.Fatal("Workflow ID is required for signal operations. Use -workflow-id")
		}
		sendSignal(ctx, c, *workflowID, *signal, signalPayload{
			itemID:   *itemID,
			quantity: *quantity,
			code:     *code,
			street:   *street,
			city:     *city,
			payment:  *payment,
		})
		return
	}

	if *query {
		if *workflowID == "" {
			log.Fatal("Workflow ID is required for query operations. Use -workflow-id")
		}
		queryState(ctx, c, *workflowID)
		return
	}

	startSession(ctx, c, cfg, *customerID, *watch)
}

func startSession(ctx context.Context, c client.Client, cfg *config.Config, customerID string, watch bool) {
	if customerID == "" {
		customerID = uuid.New().String()
	}

	fees, err := cfg.FeeSchedule()
	if err != nil {
		log.Fatalf("Invalid fee schedule: %v", err)
	}

	promos := samplePromos()
	if cfg.PromoCatalogPath != "" {
		catalog, err := promo.LoadCatalog(cfg.PromoCatalogPath)
		if err != nil {
			log.Fatalf("Failed to load promo catalog: %v", err)
		}
		promos = catalog.Codes()
	}

	input := models.CheckoutInput{
		CustomerID:     customerID,
		Menu:           sampleMenu(),
		Fees:           fees,
		Promos:         promos,
		SessionTimeout: cfg.SessionTimeout,
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("checkout-%s", customerID),
		TaskQueue: cfg.TaskQueue,
	}

	we, err := c.ExecuteWorkflow(ctx, workflowOptions, workflows.CheckoutWorkflow, input)
	if err != nil {
		log.Fatalf("Unable to start checkout session: %v", err)
	}

	log.Printf("Started checkout session for customer %s", customerID)
	log.Printf("WorkflowID: %s", we.GetID())
	log.Printf("RunID: %s", we.GetRunID())
	log.Println("\nTo build the cart and walk the checkout, run e.g.:")
	log.Printf("  go run starter/starter.go -signal add -item pizza-margherita -workflow-id %s", we.GetID())
	log.Printf("  go run starter/starter.go -signal promo -code SAVE10 -workflow-id %s", we.GetID())
	log.Printf("  go run starter/starter.go -signal form -street \"1 Main St\" -city Toronto -payment card-1 -workflow-id %s", we.GetID())
	log.Printf("  go run starter/starter.go -signal next -workflow-id %s", we.GetID())
	log.Printf("  go run starter/starter.go -query -workflow-id %s", we.GetID())

	if watch {
		log.Println("\nWaiting for session to complete...")
		var result models.CheckoutResult
		if err := we.Get(ctx, &result); err != nil {
			log.Printf("Session completed with error: %v", err)
			return
		}
		resultJSON, _ := json.MarshalIndent(result, "", "  ")
		log.Println("Session result:")
		fmt.Println(string(resultJSON))
	}
}

type signalPayload struct {
	itemID   string
	quantity int
	code     string
	street   string
	city     string
	payment  string
}

func sendSignal(ctx context.Context, c client.Client, workflowID, signal string, p signalPayload) {
	var (
		name string
		arg  interface{}
	)

	switch signal {
	case "add":
		name, arg = workflows.SignalUpdateQuantity, models.QuantityChange{ItemID: p.itemID, Delta: 1}
	case "remove":
		name, arg = workflows.SignalUpdateQuantity, models.QuantityChange{ItemID: p.itemID, Delta: -1}
	case "set-quantity":
		name, arg = workflows.SignalSetQuantity, models.SetQuantityRequest{ItemID: p.itemID, Quantity: p.quantity}
	case "promo":
		name, arg = workflows.SignalApplyPromo, models.PromoRequest{Code: p.code}
	case "remove-promo":
		name, arg = workflows.SignalRemovePromo, nil
	case "form":
		name, arg = workflows.SignalUpdateForm, models.FormUpdate{Form: checkout.FormState{
			Street:          p.street,
			City:            p.city,
			PaymentMethodID: p.payment,
		}}
	case "next":
		name, arg = workflows.SignalNext, nil
	case "back":
		name, arg = workflows.SignalBack, nil
	default:
		log.Fatalf("Unknown signal: %s", signal)
	}

	if err := c.SignalWorkflow(ctx, workflowID, "", name, arg); err != nil {
		log.Fatalf("Failed to send signal: %v", err)
	}
	log.Printf("Signal %q sent to %s", signal, workflowID)
}

func queryState(ctx context.Context, c client.Client, workflowID string) {
	resp, err := c.QueryWorkflow(ctx, workflowID, "", workflows.QueryState)
	if err != nil {
		log.Fatalf("Failed to query session: %v", err)
	}

	var state models.CheckoutState
	if err := resp.Get(&state); err != nil {
		log.Fatalf("Failed to decode query result: %v", err)
	}

	stateJSON, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal state: %v", err)
	}
	log.Println("Checkout session state:")
	fmt.Println(string(stateJSON))
}

func encryptionKey(cfg *config.Config) ([]byte, error) {
	if cfg.EncryptionKey != "" {
		return hex.DecodeString(cfg.EncryptionKey)
	}
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return nil, err
	}
	log.Printf("Warning: ENCRYPTION_KEY not set; generated key %s (must match the worker)", hex.EncodeToString(keyBytes))
	return keyBytes, nil
}

func sampleMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "pizza-margherita", Name: "Margherita Pizza", UnitPrice: decimal.RequireFromString("14.99")},
		{ID: "garlic-bread", Name: "Garlic Bread", UnitPrice: decimal.RequireFromString("4.99")},
		{ID: "tiramisu", Name: "Tiramisu", UnitPrice: decimal.RequireFromString("6.50")},
		{ID: "sparkling-water", Name: "Sparkling Water", UnitPrice: decimal.RequireFromString("2.25")},
	}
}

func samplePromos() []promo.PromoCode {
	nextYear := time.Now().AddDate(1, 0, 0)
	return []promo.PromoCode{
		{
			Code:             "SAVE10",
			Kind:             promo.KindFixedAmount,
			Value:            decimal.RequireFromString("10"),
			MinOrderSubtotal: decimal.RequireFromString("50"),
			ExpiresAt:        nextYear,
		},
		{
			Code:              "WELCOME20",
			Kind:              promo.KindPercentage,
			Value:             decimal.RequireFromString("20"),
			MaxDiscountAmount: decimal.RequireFromString("10"),
			ExpiresAt:         nextYear,
		},
		{
			Code:      "FREESHIP",
			Kind:      promo.KindFreeDelivery,
			ExpiresAt: nextYear,
		},
	}
}
