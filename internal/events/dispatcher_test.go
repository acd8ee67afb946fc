package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []Event
	d.Subscribe(EventDepartmentCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventEmployeeDeleted, func(context.Context, Event) error {
		t.Fatal("unexpected delivery")
		return nil
	})

	event := NewEvent(EventDepartmentCreated, 7, DepartmentPayload{Name: "HR"})
	require.NoError(t, d.Publish(context.Background(), event))
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ResourceID)
	assert.NotEmpty(t, got[0].ID)
}

func TestDispatcher_HandlerErrorsAreJoined(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	calls := 0
	d.Subscribe(EventEmployeeCreated, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventEmployeeCreated, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventEmployeeCreated, 1, nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
