package models

import "time"

// Action is the kind of change announced on the notification channel.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event is the notification message published on the topic named after
// a user's area. Events are transient: created, published and discarded,
// never persisted.
type Event struct {
	Action Action    `json:"action"`
	User   EventUser `json:"user"`
}

// EventUser is the user payload of an Event: either a full snapshot of
// the row after the mutation, or a minimal {id} reference for the
// deletion half of a relocation.
type EventUser struct {
	ID        string     `json:"id"`
	Delta     *int64     `json:"delta,omitempty"`
	Area      *string    `json:"area,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// SnapshotEvent builds an Event carrying the full state of u.
func SnapshotEvent(action Action, u User) Event {
	return Event{
		Action: action,
		User: EventUser{
			ID:        u.ID,
			Delta:     &u.Delta,
			Area:      &u.Area,
			CreatedAt: &u.CreatedAt,
			UpdatedAt: &u.UpdatedAt,
		},
	}
}

// ReferenceEvent builds an Event carrying only the user id. Used for the
// delete half of a relocation, where consumers on the old topic must not
// see the relocated snapshot.
func ReferenceEvent(action Action, id string) Event {
	return Event{
		Action: action,
		User:   EventUser{ID: id},
	}
}
