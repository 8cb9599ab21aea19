package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"notes-repository-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run()
	t.Cleanup(h.Stop)
	return h
}

func join(t *testing.T, h *Hub, userID uuid.UUID, buffer int) *Client {
	t.Helper()
	c := &Client{Hub: h, UserID: userID, Send: make(chan []byte, buffer)}
	before := h.ClientCount(userID)
	h.register <- c
	require.Eventually(t, func() bool { return h.ClientCount(userID) == before+1 }, time.Second, 5*time.Millisecond)
	return c
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case raw, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var m struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &m))
		return Message{Type: m.Type, Data: string(m.Data)}
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return Message{}
	}
}

func assertClosed(t *testing.T, c *Client) {
	t.Helper()
	select {
	case _, ok := <-c.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel still open")
	}
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	h := startHub(t)
	alice, bob := uuid.New(), uuid.New()
	a1 := join(t, h, alice, 4)
	a2 := join(t, h, alice, 4)
	b := join(t, h, bob, 4)

	h.Broadcast(Message{Type: "catalog.updated", Data: map[string]string{"kind": "note"}})

	for _, c := range []*Client{a1, a2, b} {
		m := receive(t, c)
		assert.Equal(t, "catalog.updated", m.Type)
		assert.JSONEq(t, `{"kind":"note"}`, m.Data.(string))
	}
}

func TestSendTargetsOneUser(t *testing.T) {
	h := startHub(t)
	alice, bob := uuid.New(), uuid.New()
	a := join(t, h, alice, 4)
	b := join(t, h, bob, 4)

	h.Send(alice, Message{Type: "ping", Data: nil})

	assert.Equal(t, "ping", receive(t, a).Type)
	assert.Len(t, b.Send, 0)
}

func TestDisconnectUserClosesOnlyTheirSockets(t *testing.T) {
	h := startHub(t)
	alice, bob := uuid.New(), uuid.New()
	a1 := join(t, h, alice, 4)
	a2 := join(t, h, alice, 4)
	join(t, h, bob, 4)

	h.DisconnectUser(alice)

	assertClosed(t, a1)
	assertClosed(t, a2)
	assert.Eventually(t, func() bool { return h.ClientCount(alice) == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, h.ClientCount(bob))
}

func TestUnregisterTwiceIsHarmless(t *testing.T) {
	h := startHub(t)
	u := uuid.New()
	c := join(t, h, u, 1)

	h.unregister <- c
	h.unregister <- c

	assertClosed(t, c)
	assert.Equal(t, 0, h.ClientCount(u))
}

func TestSlowClientIsDropped(t *testing.T) {
	h := startHub(t)
	u := uuid.New()
	c := join(t, h, u, 1)

	h.Broadcast(Message{Type: "first"})
	h.Broadcast(Message{Type: "second"})

	assert.Eventually(t, func() bool { return h.ClientCount(u) == 0 }, time.Second, 5*time.Millisecond)
	raw, ok := <-c.Send
	assert.True(t, ok)
	assert.Contains(t, string(raw), "first")
}

func TestClusterEchoFromSelfIsIgnored(t *testing.T) {
	h := startHub(t)
	u := uuid.New()
	c := join(t, h, u, 4)

	self, _ := json.Marshal(clusterPayload{Origin: h.instanceID, TargetUserID: broadcastTarget, Message: json.RawMessage(`{"type":"x","data":null}`)})
	h.handleCluster(self)
	assert.Len(t, c.Send, 0)

	other, _ := json.Marshal(clusterPayload{Origin: "other", TargetUserID: u.String(), Message: json.RawMessage(`{"type":"y","data":null}`)})
	h.handleCluster(other)
	assert.Equal(t, "y", receive(t, c).Type)

	kick, _ := json.Marshal(clusterPayload{Origin: "other", TargetUserID: u.String(), Disconnect: true})
	h.handleCluster(kick)
	assertClosed(t, c)
}
