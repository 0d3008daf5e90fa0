package subscriber

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/fabiobedeschi/iiot-userservice/pkg/models"
	"github.com/fabiobedeschi/iiot-userservice/pkg/repository"
)

// DeltaStore is the persistence contract the handler needs.
type DeltaStore interface {
	SetUserDelta(id string, delta int64) (*models.User, error)
}

// Handler reconciles notification events against the store. It is a
// terminal consumer: it re-emits nothing, so no feedback loop can form.
type Handler struct {
	store DeltaStore
}

// NewHandler creates a new reconciliation handler.
func NewHandler(store DeltaStore) *Handler {
	return &Handler{store: store}
}

// HandleMessage processes one notification message. Events carrying a
// user with both an id and a delta have the delta applied as an absolute
// value, so re-delivery of the same snapshot is idempotent. Malformed
// messages and minimal references without a delta are logged and dropped.
func (h *Handler) HandleMessage(topic string, payload []byte) error {
	var event models.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("[Subscriber] Failed to unmarshal message on topic %q: %v — dropping", topic, err)
		return nil
	}

	if event.User.ID == "" || event.User.Delta == nil {
		log.Printf("[Subscriber] Message on topic %q carries no user delta — dropping", topic)
		return nil
	}

	user, err := h.store.SetUserDelta(event.User.ID, *event.User.Delta)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("[Subscriber] User %s not found, nothing to reconcile", event.User.ID)
			return nil
		}
		log.Printf("[Subscriber] Failed to reconcile user %s: %v", event.User.ID, err)
		return err
	}

	log.Printf("[Subscriber] Reconciled user %s: delta=%d area=%q", user.ID, user.Delta, user.Area)
	return nil
}
