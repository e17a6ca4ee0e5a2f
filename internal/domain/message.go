package domain

import "time"

// Message is a single message within a conversation (messages table).
// Immutable after creation except for the read flag, which only ever
// transitions false -> true.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"index" json:"conversation_id"`
	SenderID       uint      `gorm:"index" json:"sender_id"`
	Content        string    `gorm:"type:text" json:"content"`
	Read           bool      `gorm:"default:false" json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// SendMessageRequest body for POST /portal/conversations/:id/messages
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessageResponse is a message annotated with sender display fields
type MessageResponse struct {
	ID             uint            `json:"id"`
	ConversationID uint            `json:"conversation_id"`
	Sender         *ProfileSummary `json:"sender"`
	Content        string          `json:"content"`
	Read           bool            `json:"read"`
	CreatedAt      string          `json:"created_at"`
}

// ToResponse converts Message to MessageResponse with sender info
func (m *Message) ToResponse(sender *ProfileSummary) *MessageResponse {
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         sender,
		Content:        m.Content,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339Nano),
	}
}
