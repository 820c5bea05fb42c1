package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublish_NilHub(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() { h.Publish(Event{Type: "stock_update"}) })
}

func TestPublish_QueuesEncodedEvent(t *testing.T) {
	h := NewHub(zap.NewNop())

	h.Publish(Event{Type: "stock_update", Action: "sale_recorded", Message: "ok"})

	require.Len(t, h.Broadcast, 1)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(<-h.Broadcast, &got))
	assert.Equal(t, "stock_update", got["type"])
	assert.Equal(t, "sale_recorded", got["action"])
}

func TestPublish_DropsWhenQueueFull(t *testing.T) {
	h := NewHub(zap.NewNop())
	for i := 0; i < cap(h.Broadcast)+5; i++ {
		h.Publish(Event{Type: "stock_update"})
	}
	assert.Equal(t, cap(h.Broadcast), len(h.Broadcast))
	assert.Equal(t, 0, h.ClientCount())
}
