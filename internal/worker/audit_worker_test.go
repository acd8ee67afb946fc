package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/employee-service/internal/events"
)

func TestStartAuditWorker_LogsEveryEventType(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditWorker(dispatcher, zap.New(core))

	for i, eventType := range events.AllTypes {
		require.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(eventType, int64(i+1), nil)))
	}

	entries := logs.FilterMessage("resource changed").All()
	require.Len(t, entries, len(events.AllTypes))
	assert.Equal(t, "audit", entries[0].LoggerName)
	assert.Equal(t, string(events.EventDepartmentCreated), entries[0].ContextMap()["type"])
}

func TestStartAuditWorker_NilDispatcher(t *testing.T) {
	assert.NotPanics(t, func() { StartAuditWorker(nil, zap.NewNop()) })
}
