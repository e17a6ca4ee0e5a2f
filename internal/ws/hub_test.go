package ws

import (
	"encoding/json"
	"testing"
	"time"
)

// drain reads one frame from the client's send channel or fails
func recvEvent(t *testing.T, c *Client) *Event {
	t.Helper()
	select {
	case data := <-c.send:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("bad frame: %v", err)
		}
		return &ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func expectNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("unexpected frame delivered: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func newTestClient(t *testing.T, h *Hub, memberID uint) *Client {
	t.Helper()
	// Pumps are never started, so the nil conn is never touched
	c := NewClient(h, nil, memberID)
	h.Register(c)
	settle()
	return c
}

// settle lets the hub goroutine consume pending register/subscribe
// changes before an event is sent through the separate broadcast channel
func settle() {
	time.Sleep(20 * time.Millisecond)
}

func TestHub_SendToMember(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	alice := newTestClient(t, h, 1)
	bob := newTestClient(t, h, 2)

	h.SendToMember(1, &Event{Type: EventConversationUpdated, Payload: map[string]uint{"conversation_id": 7}})

	ev := recvEvent(t, alice)
	if ev.Type != EventConversationUpdated {
		t.Errorf("event type = %q, want %q", ev.Type, EventConversationUpdated)
	}
	expectNothing(t, bob)
}

func TestHub_ConversationScopedDelivery(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	alice := newTestClient(t, h, 1)
	h.Subscribe(alice, 7)
	settle()

	h.SendToConversation(1, 7, &Event{Type: EventMessage})
	if ev := recvEvent(t, alice); ev.Type != EventMessage {
		t.Errorf("event type = %q, want %q", ev.Type, EventMessage)
	}

	// A different conversation is filtered out
	h.SendToConversation(1, 8, &Event{Type: EventMessage})
	expectNothing(t, alice)
}

func TestHub_SwitchingTearsDownOldSubscription(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	alice := newTestClient(t, h, 1)

	// Viewing conversation X, then switching to Y
	h.Subscribe(alice, 10)
	h.Subscribe(alice, 20)
	settle()

	// A push for X must not reach the client anymore
	h.SendToConversation(1, 10, &Event{Type: EventMessage})
	expectNothing(t, alice)

	// Y still delivers
	h.SendToConversation(1, 20, &Event{Type: EventMessage})
	if ev := recvEvent(t, alice); ev.Type != EventMessage {
		t.Errorf("event type = %q, want %q", ev.Type, EventMessage)
	}
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	alice := newTestClient(t, h, 1)
	h.Subscribe(alice, 5)
	h.Subscribe(alice, 0)
	settle()

	h.SendToConversation(1, 5, &Event{Type: EventMessage})
	expectNothing(t, alice)
}
