// Package events publishes appointment events to an external broker so other
// services (notifications, loyalty) can react to them.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-appointments/internal/audit"
)

// Message is the broker payload for one audit event.
type Message struct {
	ID         uuid.UUID  `json:"id"`
	Action     string     `json:"action"`
	Entity     string     `json:"entity"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	ActorID    string     `json:"actorId,omitempty"`
	Metadata   any        `json:"metadata,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

func Encode(ev audit.Event) (Message, []byte, error) {
	msg := Message{
		ID:         uuid.New(),
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		ActorID:    ev.ActorID,
		Metadata:   ev.Metadata,
		OccurredAt: ev.OccurredAt.UTC(),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return Message{}, nil, err
	}
	return msg, b, nil
}
