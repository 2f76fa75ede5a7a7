package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"delivery-checkout-system/activities"
	"delivery-checkout-system/codec"
	"delivery-checkout-system/config"
	"delivery-checkout-system/logging"
	"delivery-checkout-system/workflows"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	keyBytes, err := encryptionKey(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to prepare encryption key", zap.Error(err))
	}

	dataConverter, err := codec.NewEncryptionDataConverter(keyBytes)
	if err != nil {
		logger.Fatal("Failed to create encryption data converter", zap.Error(err))
	}

	c, err := client.Dial(client.Options{
		HostPort:      cfg.TemporalAddress,
		DataConverter: dataConverter,
		Logger:        logging.NewZapAdapter(logger),
	})
	if err != nil {
		logger.Fatal("Unable to create Temporal client", zap.Error(err))
	}
	defer c.Close()

	w := worker.New(c, cfg.TaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize:     100,
		MaxConcurrentWorkflowTaskExecutionSize: 50,
	})

	w.RegisterWorkflow(workflows.CheckoutWorkflow)
	w.RegisterWorkflow(workflows.SubmissionWorkflow)

	act := activities.NewActivities(cfg.OrderGatewayURL)
	w.RegisterActivity(act.PlaceOrder)
	w.RegisterActivity(act.NotifyCustomer)
	w.RegisterActivity(act.RecordAbandonment)

	logger.Info("Starting checkout worker",
		zap.String("temporal_address", cfg.TemporalAddress),
		zap.String("task_queue", cfg.TaskQueue),
		zap.String("order_gateway_url", cfg.OrderGatewayURL))

	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Fatal("Unable to start worker", zap.Error(err))
	}
}

// encryptionKey decodes the configured key, or generates a throwaway one so
// local runs work without setup. Worker and starter must share the key.
func encryptionKey(cfg *config.Config, logger *zap.Logger) ([]byte, error) {
	if cfg.EncryptionKey != "" {
		return hex.DecodeString(cfg.EncryptionKey)
	}
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return nil, err
	}
	logger.Warn("ENCRYPTION_KEY not set; generated a session key",
		zap.String("key", hex.EncodeToString(keyBytes)))
	return keyBytes, nil
}
