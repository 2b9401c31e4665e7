package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/agate-ltd/agency-crm/internal/events"
)

// AuditSink receives every domain event after it has been logged.
type AuditSink interface {
	Write(ctx context.Context, event events.Event) error
}

// AuditService records domain events to the log and, when configured, to an external sink.
type AuditService struct {
	dispatcher events.Dispatcher
	sink       AuditSink
	logger     *zap.Logger
}

// NewAuditService creates the service. sink may be nil.
func NewAuditService(dispatcher events.Dispatcher, sink AuditSink, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		sink:       sink,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every published event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes() {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(ctx context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
	}
	if event.Actor.StaffID != "" {
		fields = append(fields, zap.String("actor_staff_id", event.Actor.StaffID))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	a.logger.Info("audit", fields...)

	if a.sink == nil {
		return nil
	}
	return a.sink.Write(ctx, event)
}
