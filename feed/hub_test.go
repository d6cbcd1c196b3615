package feed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/housekeeping-app/models"
	"github.com/yeremiapane/housekeeping-app/utils"
)

// The conn is only touched by the pumps, so queue-level behavior can be
// tested with a bare client.
func newTestClient(name string) *Client {
	return NewClient(nil, name)
}

func drainOne(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case raw := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	default:
		t.Fatal("expected a queued frame")
		return Message{}
	}
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	utils.InitLogger()
	Init(nil, false)

	a := newTestClient("a")
	b := newTestClient("b")
	RegisterClient(a)
	RegisterClient(b)
	defer UnregisterClient(a)
	defer UnregisterClient(b)

	EmitRoomUpdate("101", models.StatusInProgress, models.StatusAvailable, nil)

	for _, c := range []*Client{a, b} {
		msg := drainOne(t, c)
		assert.Equal(t, EventRoomUpdate, msg.Event)
		data := msg.Data.(map[string]interface{})
		assert.Equal(t, "101", data["roomNumber"])
		assert.Equal(t, "in_progress", data["status"])
	}
}

func TestSendEventTargetsSingleClient(t *testing.T) {
	utils.InitLogger()

	a := newTestClient("a")
	b := newTestClient("b")
	RegisterClient(a)
	RegisterClient(b)
	defer UnregisterClient(a)
	defer UnregisterClient(b)

	a.SendEvent(EventInitialData, map[string]string{"hello": "world"})

	msg := drainOne(t, a)
	assert.Equal(t, EventInitialData, msg.Event)

	select {
	case <-b.send:
		t.Fatal("direct send leaked to another client")
	default:
	}
}

func TestSlowClientDropsFrameInsteadOfBlocking(t *testing.T) {
	utils.InitLogger()
	Init(nil, false)

	c := newTestClient("slow")
	RegisterClient(c)
	defer UnregisterClient(c)

	// Fill the queue, then one more. The broadcast must return anyway.
	for i := 0; i < cap(c.send); i++ {
		c.send <- []byte("{}")
	}
	EmitResetCleaning("101", nil)

	assert.Len(t, c.send, cap(c.send))
}

func TestSendAfterUnregisterIsDropped(t *testing.T) {
	utils.InitLogger()
	Init(nil, false)

	c := newTestClient("gone")
	RegisterClient(c)
	UnregisterClient(c)

	// Late frames land nowhere instead of hitting a closed channel.
	assert.False(t, c.enqueue([]byte("{}")))
	c.SendEvent(EventInitialData, map[string]string{"hello": "world"})
	EmitResetCleaning("101", nil)
}

func TestBroadcastDuringDisconnectChurn(t *testing.T) {
	utils.InitLogger()
	Init(nil, false)

	// Clients connect and drop while events keep flowing; the scatter
	// must survive the overlap.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			c := newTestClient("churn")
			RegisterClient(c)
			UnregisterClient(c)
		}
	}()
	for i := 0; i < 200; i++ {
		EmitRoomUpdate("101", models.StatusInProgress, models.StatusAvailable, nil)
	}
	<-done
}

func TestUnregisterIsIdempotent(t *testing.T) {
	utils.InitLogger()

	c := newTestClient("once")
	RegisterClient(c)
	before := ClientCount()

	UnregisterClient(c)
	UnregisterClient(c)

	assert.Equal(t, before-1, ClientCount())
}
