package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fabiobedeschi/iiot-userservice/internal/subscriber"
	"github.com/fabiobedeschi/iiot-userservice/pkg/config"
	"github.com/fabiobedeschi/iiot-userservice/pkg/mqtt"
	"github.com/fabiobedeschi/iiot-userservice/pkg/postgres"
	"github.com/fabiobedeschi/iiot-userservice/pkg/repository"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[Subscriber] Starting delta-subscriber...")

	cfg := config.Load()

	// The subscriber owns its own repository connection, independent of
	// the broker connection, retried with exponential backoff.
	db, err := postgres.ConnectWithBackoff(cfg.DatabaseURL(), postgres.RetryConfig{
		Backoff:      cfg.ConnectBackoff,
		Multiplier:   cfg.BackoffMultiplier,
		KeepRetrying: cfg.KeepRetrying,
	})
	if err != nil {
		log.Fatalf("[Subscriber] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	handler := subscriber.NewHandler(repository.NewUserRepository(db))

	client, err := mqtt.SetupSubscriber(cfg.BrokerURL(), mqtt.SubscriberConfig{
		Topic:    cfg.Topic,
		QoS:      cfg.QoS,
		ClientID: "userservice-subscriber",
	}, handler.HandleMessage)
	if err != nil {
		log.Fatalf("[Subscriber] Failed to setup subscriber: %v", err)
	}
	defer client.Disconnect(250)

	log.Println("[Subscriber] Subscriber is running. Waiting for messages...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Subscriber] Shutting down...")
}
