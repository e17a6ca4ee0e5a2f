package domain

import "time"

// Event is an organization event (events table)
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:300" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	EventDate   time.Time `gorm:"index" json:"event_date"`
	Location    string    `gorm:"size:300" json:"location"`
	IsVirtual   bool      `json:"is_virtual"`
	Capacity    int       `json:"capacity,omitempty"` // 0 = unlimited
	CreatedBy   uint      `gorm:"index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// EventRegistration links a member to an event (event_registrations table)
type EventRegistration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"uniqueIndex:idx_event_member" json:"event_id"`
	MemberID  uint      `gorm:"uniqueIndex:idx_event_member" json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (EventRegistration) TableName() string {
	return "event_registrations"
}

// CreateEventRequest body for POST /portal/events
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	EventDate   string `json:"event_date" binding:"required"` // RFC3339
	Location    string `json:"location"`
	IsVirtual   bool   `json:"is_virtual"`
	Capacity    int    `json:"capacity"`
}

// EventResponse is an event annotated with registration info
type EventResponse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	EventDate       string `json:"event_date"`
	Location        string `json:"location"`
	IsVirtual       bool   `json:"is_virtual"`
	Capacity        int    `json:"capacity,omitempty"`
	CreatedBy       uint   `json:"created_by"`
	RegisteredCount int64  `json:"registered_count"`
	IsRegistered    bool   `json:"is_registered"`
}

// ToResponse converts Event to EventResponse
func (e *Event) ToResponse(registered int64, isRegistered bool) *EventResponse {
	return &EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		EventDate:       e.EventDate.Format(time.RFC3339),
		Location:        e.Location,
		IsVirtual:       e.IsVirtual,
		Capacity:        e.Capacity,
		CreatedBy:       e.CreatedBy,
		RegisteredCount: registered,
		IsRegistered:    isRegistered,
	}
}
