package mqtt

import (
	"fmt"
	"log"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// SubscriberConfig holds configuration for setting up a subscriber.
type SubscriberConfig struct {
	Topic    string
	QoS      byte
	ClientID string
}

// MessageHandler is a function that processes a delivered message.
// Errors are logged and the message is dropped; delivery is at most once
// at the default QoS, so there is no redelivery to trigger.
type MessageHandler func(topic string, payload []byte) error

// SetupSubscriber connects to the broker and subscribes to the configured
// topic. The subscription is re-established on every (re)connect, so a
// transport error collapses the subscriber back to connecting and the
// client recovers on its own.
func SetupSubscriber(brokerURL string, cfg SubscriberConfig, handler MessageHandler) (paho.Client, error) {
	onMessage := func(_ paho.Client, msg paho.Message) {
		log.Printf("[%s] Received message on topic %q", cfg.ClientID, msg.Topic())
		if err := handler(msg.Topic(), msg.Payload()); err != nil {
			log.Printf("[%s] Error processing message: %v — dropping", cfg.ClientID, err)
		}
	}

	opts := paho.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(c paho.Client) {
			token := c.Subscribe(cfg.Topic, cfg.QoS, onMessage)
			token.Wait()
			if err := token.Error(); err != nil {
				log.Printf("[%s] Failed to subscribe to topic %q: %v", cfg.ClientID, cfg.Topic, err)
				return
			}
			log.Printf("[%s] Subscribed to topic %q (qos=%d)", cfg.ClientID, cfg.Topic, cfg.QoS)
		})

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to %s timed out", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("could not connect to MQTT broker: %w", err)
	}

	return client, nil
}
