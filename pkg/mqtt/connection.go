package mqtt

import (
	"fmt"
	"log"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const connectTimeout = 10 * time.Second

// Connect establishes a connection to the MQTT broker with retries.
func Connect(brokerURL, clientID string) (paho.Client, error) {
	opts := paho.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := paho.NewClient(opts)

	var err error
	for i := 0; i < 30; i++ {
		token := client.Connect()
		if !token.WaitTimeout(connectTimeout) {
			err = fmt.Errorf("connect to %s timed out", brokerURL)
		} else {
			err = token.Error()
		}
		if err == nil {
			log.Println("Connected to MQTT broker")
			return client, nil
		}
		log.Printf("Failed to connect to MQTT broker: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("could not connect to MQTT broker after 30 attempts: %w", err)
}
