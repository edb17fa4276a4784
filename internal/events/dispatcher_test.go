package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcherDeliversToMatchingSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, deleted []Event
	d.Subscribe(EventIssueCreated, func(_ context.Context, e Event) error {
		created = append(created, e)
		return nil
	})
	d.Subscribe(EventIssueDeleted, func(_ context.Context, e Event) error {
		deleted = append(deleted, e)
		return nil
	})

	event := Event{ID: "evt-1", Type: EventIssueCreated, IssueID: "iss-1", Timestamp: time.Now()}
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, created, 1)
	assert.Equal(t, "iss-1", created[0].IssueID)
	assert.Empty(t, deleted)
}

func TestInMemoryDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var secondCalled bool
	d.Subscribe(EventIssueStatusChanged, func(context.Context, Event) error {
		return errors.New("handler failure")
	})
	d.Subscribe(EventIssueStatusChanged, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventIssueStatusChanged}))
	assert.True(t, secondCalled)
}

func TestInMemoryDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventIssueDeleted}))
}
