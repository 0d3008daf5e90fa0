package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/fabiobedeschi/iiot-userservice/pkg/models"
)

const publishTimeout = 10 * time.Second

// Publisher publishes notification events to the broker. The topic is
// the area string of the user the event refers to; the empty string is a
// valid, degenerate topic.
type Publisher struct {
	client paho.Client
	qos    byte
}

// NewPublisher creates a new publisher over an established client.
func NewPublisher(client paho.Client, qos byte) *Publisher {
	return &Publisher{client: client, qos: qos}
}

// Publish sends an event to the given topic. No delivery guarantee
// beyond the configured QoS; callers treat this as fire-and-forget.
func (p *Publisher) Publish(topic string, event models.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	log.Printf("[Publisher] Publishing event: action=%s topic=%q user=%s",
		event.Action, topic, event.User.ID)

	token := p.client.Publish(topic, p.qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to topic %q timed out", topic)
	}
	return token.Error()
}

// Close disconnects the underlying client.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
