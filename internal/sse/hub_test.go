package sse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastAndUnregister(t *testing.T) {
	hub := NewHub()
	a := hub.Register("a")
	b := hub.Register("b")
	assert.Equal(t, 2, hub.ClientCount())

	NewHubNotifier(hub).NotifyProductUpdated(7)

	for _, c := range []*Client{a, b} {
		require.Len(t, c.Events, 1)
		var ev CatalogEvent
		require.NoError(t, json.Unmarshal(<-c.Events, &ev))
		assert.Equal(t, EventProductUpdated, ev.Event)
		assert.Equal(t, 7, ev.ProductID)
		assert.False(t, ev.Timestamp.IsZero())
	}

	hub.Unregister("a")
	_, open := <-a.Events
	assert.False(t, open)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister("missing")
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	c := hub.Register("slow")
	n := NewHubNotifier(hub)

	for i := 0; i < cap(c.Events)+5; i++ {
		n.NotifyCategoryCreated()
	}
	assert.Len(t, c.Events, cap(c.Events))
}

func TestNotifiers(t *testing.T) {
	hub := NewHub()
	n := NewHubNotifier(hub)

	// No clients: nothing to deliver, nothing blocks.
	n.NotifyProductCreated()
	n.NotifyImagesChanged(3)

	c := hub.Register("tab")
	n.NotifyImagesChanged(3)
	var ev CatalogEvent
	require.NoError(t, json.Unmarshal(<-c.Events, &ev))
	assert.Equal(t, EventImagesChanged, ev.Event)

	var nop CatalogNotifier = &NopNotifier{}
	nop.NotifyCategoryCreated()
	nop.NotifyProductUpdated(1)
}
