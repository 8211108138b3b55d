package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("E1001")
	defer cleanup()

	hub.Publish("E1001", Event{Event: EventNotification, Data: "hello"})

	select {
	case event := <-ch:
		assert.Equal(t, EventNotification, event.Event)
		assert.Equal(t, "hello", event.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestPublishToOtherEmployeeNotDelivered(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("E1001")
	defer cleanup()

	hub.Publish("E2001", Event{Event: EventNotification})

	assert.Empty(t, ch)
}

func TestMultipleTabsEachReceive(t *testing.T) {
	hub := NewHub()

	first, cleanupFirst := hub.Subscribe("E1001")
	defer cleanupFirst()
	second, cleanupSecond := hub.Subscribe("E1001")
	defer cleanupSecond()

	require.Equal(t, 2, hub.SubscriberCount("E1001"))

	hub.Publish("E1001", Event{Event: EventUnreadCount, Data: 3})

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}

func TestCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("E1001")
	require.Equal(t, 1, hub.SubscriberCount("E1001"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("E1001"))
}

func TestFullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("E1001")
	defer cleanup()

	// Channel buffer is 10; publishing past it must not deadlock.
	for i := 0; i < 20; i++ {
		hub.Publish("E1001", Event{Event: EventNotification, Data: i})
	}
}
