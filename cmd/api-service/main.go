package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fabiobedeschi/iiot-userservice/internal/api"
	"github.com/fabiobedeschi/iiot-userservice/internal/service"
	"github.com/fabiobedeschi/iiot-userservice/pkg/config"
	"github.com/fabiobedeschi/iiot-userservice/pkg/mqtt"
	"github.com/fabiobedeschi/iiot-userservice/pkg/postgres"
	"github.com/fabiobedeschi/iiot-userservice/pkg/repository"

	_ "github.com/fabiobedeschi/iiot-userservice/docs"
)

// @title           IIoT User Service API
// @version         1.0
// @description     Tracks users carrying a delta balance and an area assignment, announcing every change on an MQTT topic named after the area.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[API] Starting api-service...")

	cfg := config.Load()

	// Connect to PostgreSQL
	db, err := postgres.Connect(cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("[API] Failed to run migrations: %v", err)
	}

	// Connect to the MQTT broker unless event emission is disabled
	var publisher service.Publisher
	if !cfg.DisableUpdates {
		client, err := mqtt.Connect(cfg.BrokerURL(), "userservice-api")
		if err != nil {
			log.Fatalf("[API] Failed to connect to MQTT broker: %v", err)
		}
		pub := mqtt.NewPublisher(client, cfg.QoS)
		defer pub.Close()
		publisher = pub
	}

	// Wire the coordinator and handlers
	users := repository.NewUserRepository(db)
	bins := repository.NewWasteBinRepository(db)
	coordinator := service.NewUserService(users, publisher, !cfg.DisableUpdates)
	router := api.NewRouter(api.NewUserHandler(coordinator), api.NewWasteBinHandler(bins))

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Listening on port %s", cfg.APIPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[API] Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[API] Server forced to shutdown: %v", err)
	}
	log.Println("[API] Server exited gracefully")
}
