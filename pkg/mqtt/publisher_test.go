package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabiobedeschi/iiot-userservice/pkg/models"
)

type fakeToken struct{ err error }

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

// fakeClient records published messages.
type fakeClient struct {
	paho.Client

	topics   []string
	qos      []byte
	payloads [][]byte
	err      error
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.topics = append(c.topics, topic)
	c.qos = append(c.qos, qos)
	c.payloads = append(c.payloads, payload.([]byte))
	return &fakeToken{err: c.err}
}

func (c *fakeClient) Disconnect(uint) {}

func TestPublish_SendsWireFormatToAreaTopic(t *testing.T) {
	client := &fakeClient{}
	pub := NewPublisher(client, 1)

	user := models.User{ID: "user-1", Delta: 42, Area: "ABC"}
	err := pub.Publish("ABC", models.SnapshotEvent(models.ActionCreate, user))
	require.NoError(t, err)

	require.Len(t, client.topics, 1)
	assert.Equal(t, "ABC", client.topics[0])
	assert.Equal(t, byte(1), client.qos[0])

	var event models.Event
	require.NoError(t, json.Unmarshal(client.payloads[0], &event))
	assert.Equal(t, models.ActionCreate, event.Action)
	assert.Equal(t, "user-1", event.User.ID)
}

func TestPublish_EmptyTopicIsValid(t *testing.T) {
	client := &fakeClient{}
	pub := NewPublisher(client, 0)

	err := pub.Publish("", models.ReferenceEvent(models.ActionDelete, "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "", client.topics[0])
}

func TestPublish_TokenErrorIsReturned(t *testing.T) {
	client := &fakeClient{err: errors.New("broker unavailable")}
	pub := NewPublisher(client, 0)

	err := pub.Publish("ABC", models.ReferenceEvent(models.ActionDelete, "user-1"))
	assert.Error(t, err)
}
