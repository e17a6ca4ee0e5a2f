package domain

import (
	"fmt"
	"time"
)

// Conversation is a durable association between exactly two members
// (conversations table). The pair is unordered; PairKey normalizes it
// so the database can enforce at most one conversation per pair.
type Conversation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Participant1 uint      `gorm:"index" json:"participant1"`
	Participant2 uint      `gorm:"index" json:"participant2"`
	PairKey      string    `gorm:"uniqueIndex;size:64" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"` // bumped on every message send
}

func (Conversation) TableName() string {
	return "conversations"
}

// PairKeyFor returns the normalized key for an unordered member pair
func PairKeyFor(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// OtherParticipant returns the counterpart of the viewing member
func (c *Conversation) OtherParticipant(viewerID uint) uint {
	if c.Participant1 == viewerID {
		return c.Participant2
	}
	return c.Participant1
}

// HasParticipant reports whether the member takes part in the conversation
func (c *Conversation) HasParticipant(memberID uint) bool {
	return c.Participant1 == memberID || c.Participant2 == memberID
}

// ConversationResponse annotates a conversation with the counterpart
// profile and the most recent message for list rendering
type ConversationResponse struct {
	ID               uint             `json:"id"`
	OtherParticipant *ProfileSummary  `json:"other_participant"`
	LastMessage      *MessageResponse `json:"last_message,omitempty"`
	UnreadCount      int64            `json:"unread_count"`
	UpdatedAt        string           `json:"updated_at"`
}
