package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/events"
)

// StartAuditWorker subscribes a structured audit log to every change event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	audit := logger.Named("audit")
	for _, eventType := range events.AllTypes {
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			audit.Info("resource changed",
				zap.String("event_id", e.ID),
				zap.String("type", string(e.Type)),
				zap.Int64("resource_id", e.ResourceID),
				zap.Time("at", e.Timestamp),
				zap.Any("payload", e.Payload),
			)
			return nil
		})
	}
}
