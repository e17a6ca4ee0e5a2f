package ws

import "github.com/BjornOnGit/adec-web/internal/domain"

// Pusher adapts the Hub to the messaging service's push interface
type Pusher struct {
	hub *Hub
}

// NewPusher creates a new Pusher
func NewPusher(hub *Hub) *Pusher {
	return &Pusher{hub: hub}
}

// MessageCreated pushes the stored message to both participants'
// clients subscribed to the conversation. The sender receives the echo
// too; that echo is what renders the send.
func (p *Pusher) MessageCreated(participants [2]uint, msg *domain.MessageResponse) {
	event := &Event{Type: EventMessage, Payload: msg}
	for _, memberID := range participants {
		p.hub.SendToConversation(memberID, msg.ConversationID, event)
	}
}

// MessageNotification sends an unread-message notification to all of
// the recipient's connections, regardless of which conversation they
// are viewing. Suppressed upstream when the recipient disabled message
// notifications.
func (p *Pusher) MessageNotification(memberID uint, msg *domain.MessageResponse) {
	p.hub.SendToMember(memberID, &Event{Type: EventNotification, Payload: msg})
}

// ConversationUpdated tells both participants to refresh their
// conversation list
func (p *Pusher) ConversationUpdated(participants [2]uint, conversationID uint) {
	event := &Event{
		Type:    EventConversationUpdated,
		Payload: map[string]uint{"conversation_id": conversationID},
	}
	for _, memberID := range participants {
		p.hub.SendToMember(memberID, event)
	}
}
