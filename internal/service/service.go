package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agate-ltd/agency-crm/internal/events"
)

// publisher stamps and publishes domain events. A nil dispatcher drops them.
type publisher struct {
	dispatcher events.Dispatcher
	now        func() time.Time
}

func newPublisher(dispatcher events.Dispatcher) publisher {
	return publisher{dispatcher: dispatcher, now: time.Now}
}

func (p publisher) publish(ctx context.Context, eventType events.EventType, entityID string, payload interface{}) {
	if p.dispatcher == nil {
		return
	}
	_ = p.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Actor:     events.ActorFromContext(ctx),
		Timestamp: p.now().UTC(),
		Payload:   payload,
	})
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func tooLong(value string, max int) bool {
	return len([]rune(value)) > max
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
