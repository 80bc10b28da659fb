package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferRecordsInOrder(t *testing.T) {
	var b Buffer
	b.Record(NewUserCreated("u1", "a@example.com"))
	b.Record(NewUserEmailVerified("u1"))

	events := b.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "user.created", events[0].EventName())
	assert.Equal(t, "user.email_verified", events[1].EventName())
	assert.Equal(t, "u1", events[0].AggregateID())
	assert.WithinDuration(t, time.Now(), events[0].OccurredAt(), time.Minute)
}

func TestBufferEventsReturnsCopy(t *testing.T) {
	var b Buffer
	b.Record(NewUserCreated("u1", "a@example.com"))

	events := b.Events()
	events[0] = nil
	require.Len(t, b.Events(), 1)
	assert.NotNil(t, b.Events()[0])
}

func TestBufferClear(t *testing.T) {
	var b Buffer
	b.Record(NewUserCreated("u1", "a@example.com"))
	b.ClearEvents()
	assert.Empty(t, b.Events())
}
