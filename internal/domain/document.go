package domain

import "time"

// Document is per-member file metadata (documents table).
// The file body lives in object storage under FileKey.
type Document struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"index" json:"member_id"`
	Name      string    `gorm:"size:300" json:"name"`
	FileKey   string    `gorm:"size:500" json:"-"`
	FileURL   string    `gorm:"size:500" json:"file_url"`
	FileSize  int64     `json:"file_size"`
	FileType  string    `gorm:"size:100" json:"file_type"`
	Category  string    `gorm:"size:100" json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Document) TableName() string {
	return "documents"
}
