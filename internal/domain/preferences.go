package domain

import "time"

// NotificationPreferences per-member notification switches
// (notification_preferences table). A member without a row gets
// DefaultPreferences.
type NotificationPreferences struct {
	ID                   uint      `gorm:"primaryKey" json:"-"`
	MemberID             uint      `gorm:"uniqueIndex" json:"member_id"`
	EmailNotifications   bool      `json:"email_notifications"`
	EventReminders       bool      `json:"event_reminders"`
	MessageNotifications bool      `json:"message_notifications"`
	Newsletter           bool      `json:"newsletter"`
	MarketingEmails      bool      `json:"marketing_emails"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (NotificationPreferences) TableName() string {
	return "notification_preferences"
}

// DefaultPreferences returns the defaults applied before a member
// has saved any preferences
func DefaultPreferences(memberID uint) *NotificationPreferences {
	return &NotificationPreferences{
		MemberID:             memberID,
		EmailNotifications:   true,
		EventReminders:       true,
		MessageNotifications: true,
		Newsletter:           true,
		MarketingEmails:      false,
	}
}

// UpdatePreferencesRequest body for PUT /portal/settings/notifications
type UpdatePreferencesRequest struct {
	EmailNotifications   *bool `json:"email_notifications"`
	EventReminders       *bool `json:"event_reminders"`
	MessageNotifications *bool `json:"message_notifications"`
	Newsletter           *bool `json:"newsletter"`
	MarketingEmails      *bool `json:"marketing_emails"`
}
