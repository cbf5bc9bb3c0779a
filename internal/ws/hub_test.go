package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-boutique-ws/internal/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishQueuesJSON(t *testing.T) {
	h := NewHub()
	h.Publish(context.Background(), eventbus.New(eventbus.PanierUpdated, map[string]string{"id": "42"}))

	msg := <-h.Broadcast
	var ev map[string]interface{}
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, eventbus.PanierUpdated, ev["type"])
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	h := NewHub()
	for i := 0; i < cap(h.Broadcast)+10; i++ {
		h.Publish(context.Background(), eventbus.New(eventbus.CatalogChanged, i))
	}
	assert.Len(t, h.Broadcast, cap(h.Broadcast))
}

func TestHub_RunStops(t *testing.T) {
	h := NewHub()
	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()
	h.Stop()
	<-done
	assert.Equal(t, 0, h.Count())
}

func TestHub_LeaveAfterStopReturns(t *testing.T) {
	h := NewHub()
	go h.Run()
	h.Stop()
	h.Stop()
	assert.False(t, h.Join(nil))

	done := make(chan struct{})
	go func() {
		h.Leave(nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Leave blocked on a stopped hub")
	}
}
