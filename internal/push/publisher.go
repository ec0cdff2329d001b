// Package push emits conversation events so an external transport layer can
// fan them out to connected peers. The core never manages peer connections.
package push

import (
	"context"
	"time"

	"github.com/google/uuid"

	"skillswap-backend/internal/domain"
)

type EventType string

const (
	EventMessageCreated EventType = "message.created"
	EventStatusChanged  EventType = "message.status_changed"
)

// Event is the payload published per conversation. EventID and EmittedAt let
// subscribers reconcile against HTTP responses with last-write-wins.
type Event struct {
	EventID         string          `json:"event_id"`
	Type            EventType       `json:"type"`
	ConversationKey string          `json:"conversation_key"`
	Message         *domain.Message `json:"message"`
	EmittedAt       time.Time       `json:"emitted_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

func NewEvent(eventType EventType, msg *domain.Message) Event {
	return Event{
		EventID:         uuid.NewString(),
		Type:            eventType,
		ConversationKey: msg.ConversationKey,
		Message:         msg,
		EmittedAt:       time.Now().UTC(),
	}
}
