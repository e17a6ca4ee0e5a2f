package domain

import "time"

// NewsletterSubscription is a public newsletter signup (newsletter_subscriptions table)
type NewsletterSubscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:191" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (NewsletterSubscription) TableName() string {
	return "newsletter_subscriptions"
}

// ContactMessage is a public contact form submission (contact_messages table)
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200" json:"name"`
	Email     string    `gorm:"size:191" json:"email"`
	Subject   string    `gorm:"size:300" json:"subject"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

// ContactRequest body for POST /contact
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// Partner is a partner organization shown on the public site (partners table)
type Partner struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200" json:"name"`
	LogoURL     string    `gorm:"size:500" json:"logo_url,omitempty"`
	Website     string    `gorm:"size:500" json:"website,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	SortOrder   int       `gorm:"default:0;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Partner) TableName() string {
	return "partners"
}
