package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var got []string
	d.Subscribe(EventChecklistCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.ResourceID)
		return errors.New("boom")
	})
	d.Subscribe(EventChecklistCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.ResourceID)
		return nil
	})
	d.Subscribe(EventChecklistDeleted, func(context.Context, Event) error {
		got = append(got, "deleted")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventChecklistCreated, "c1", Actor{}, ChecklistPayload{Name: "KYC"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"first:c1", "second:c1"}, got)
}

func TestNewEventStampsIDAndTime(t *testing.T) {
	a := NewEvent(EventReportDrafted, "RPT-1", Actor{UserID: "u1"}, nil)
	b := NewEvent(EventReportDrafted, "RPT-1", Actor{UserID: "u1"}, nil)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}
