package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "portal_events"

// Event types pushed to portal clients
const (
	EventMessage             = "message"              // payload: full message with sender fields
	EventConversationUpdated = "conversation_updated" // payload: {conversation_id} only; clients reload their list
	EventNotification        = "notification"         // payload: message preview for members not viewing the conversation
)

// Event is a real-time notification sent via WebSocket
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub manages WebSocket clients and routes events. Clients are grouped
// by member ID; each client additionally holds at most one
// conversation-scoped subscription at a time. Subscribing to a new
// conversation replaces the previous subscription, so a message for a
// conversation the client navigated away from is never delivered.
type Hub struct {
	// Registered clients grouped by member ID
	clients map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Conversation subscription changes (0 clears the subscription)
	subscribe chan *subscriptionChange

	// Targeted delivery
	broadcast chan *targetedEvent

	mu          sync.RWMutex
	redisClient *redis.Client
	instanceID  string
	ctx         context.Context
	cancel      context.CancelFunc
}

type subscriptionChange struct {
	Client         *Client
	ConversationID uint
}

// targetedEvent addresses one member; when ConversationID is non-zero
// only that member's clients subscribed to the conversation receive it
type targetedEvent struct {
	MemberID       uint
	ConversationID uint
	Event          *Event
}

// NewHub creates a new Hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uint]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *subscriptionChange, 64),
		broadcast:   make(chan *targetedEvent, 256),
		redisClient: redisClient,
		instanceID:  uuid.New().String(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Subscribe points a client's conversation subscription at the given
// conversation, tearing down any previous one. Zero unsubscribes.
func (h *Hub) Subscribe(client *Client, conversationID uint) {
	h.subscribe <- &subscriptionChange{Client: client, ConversationID: conversationID}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.memberID] == nil {
				h.clients[client.memberID] = make(map[*Client]bool)
			}
			h.clients[client.memberID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.memberID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.memberID)
					}
				}
			}
			h.mu.Unlock()

		case sub := <-h.subscribe:
			// conversationID is only touched on this goroutine
			sub.Client.conversationID = sub.ConversationID

		case msg := <-h.broadcast:
			h.mu.RLock()
			if clients, ok := h.clients[msg.MemberID]; ok {
				data, err := json.Marshal(msg.Event)
				if err == nil {
					for client := range clients {
						if msg.ConversationID != 0 && client.conversationID != msg.ConversationID {
							continue
						}
						select {
						case client.send <- data:
						default:
							close(client.send)
							delete(clients, client)
						}
					}
				}
			}
			h.mu.RUnlock()

		case <-h.ctx.Done():
			return
		}
	}
}

// SendToMember sends an event to every connection of a member
// (local + Redis publish for other instances)
func (h *Hub) SendToMember(memberID uint, event *Event) {
	h.send(&targetedEvent{MemberID: memberID, Event: event})
}

// SendToConversation delivers an event to a member's connections that
// are currently subscribed to the conversation
func (h *Hub) SendToConversation(memberID, conversationID uint, event *Event) {
	h.send(&targetedEvent{MemberID: memberID, ConversationID: conversationID, Event: event})
}

func (h *Hub) send(te *targetedEvent) {
	// Local broadcast
	h.broadcast <- te

	// Publish to Redis for multi-instance support
	if h.redisClient != nil {
		msg := &redisMessage{
			Origin:         h.instanceID,
			MemberID:       te.MemberID,
			ConversationID: te.ConversationID,
			Event:          te.Event,
		}
		data, err := json.Marshal(msg)
		if err == nil {
			h.redisClient.Publish(h.ctx, redisPubSubChannel, data) //nolint:errcheck
		}
	}
}

type redisMessage struct {
	Origin         string `json:"origin"`
	MemberID       uint   `json:"member_id"`
	ConversationID uint   `json:"conversation_id,omitempty"`
	Event          *Event `json:"event"`
}

// subscribeRedis listens for events published by other instances
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var rm redisMessage
			if err := json.Unmarshal([]byte(msg.Payload), &rm); err == nil {
				// Skip events this instance already delivered locally
				if rm.Origin == h.instanceID {
					continue
				}
				h.broadcast <- &targetedEvent{
					MemberID:       rm.MemberID,
					ConversationID: rm.ConversationID,
					Event:          rm.Event,
				}
			}
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
