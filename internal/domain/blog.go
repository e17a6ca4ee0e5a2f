package domain

import "time"

// Blog post status values
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// BlogPost is a member-authored article (blog_posts table)
type BlogPost struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AuthorID      uint      `gorm:"index" json:"author_id"`
	Title         string    `gorm:"size:300" json:"title"`
	Content       string    `gorm:"type:text" json:"content"`
	Excerpt       string    `gorm:"size:500" json:"excerpt"`
	FeaturedImage string    `gorm:"size:500" json:"featured_image,omitempty"`
	Tags          []string  `gorm:"serializer:json" json:"tags,omitempty"`
	Category      string    `gorm:"size:100;default:general" json:"category"`
	Status        string    `gorm:"size:20;default:draft;index" json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// SavePostRequest body for creating or updating a blog post
type SavePostRequest struct {
	Title         string   `json:"title" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	Excerpt       string   `json:"excerpt"`
	FeaturedImage string   `json:"featured_image"`
	Tags          []string `json:"tags"`
	Category      string   `json:"category"`
	Status        string   `json:"status"`
}

// BlogPostResponse is a post annotated with author display fields
type BlogPostResponse struct {
	ID            uint            `json:"id"`
	Author        *ProfileSummary `json:"author"`
	Title         string          `json:"title"`
	Content       string          `json:"content,omitempty"`
	Excerpt       string          `json:"excerpt"`
	FeaturedImage string          `json:"featured_image,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Category      string          `json:"category"`
	Status        string          `json:"status"`
	PublishedAt   string          `json:"published_at,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

// ToResponse converts BlogPost to BlogPostResponse. Content is included
// only when full is true (list views send excerpts only).
func (p *BlogPost) ToResponse(author *ProfileSummary, full bool) *BlogPostResponse {
	resp := &BlogPostResponse{
		ID:            p.ID,
		Author:        author,
		Title:         p.Title,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		Tags:          p.Tags,
		Category:      p.Category,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
	if full {
		resp.Content = p.Content
	}
	if p.PublishedAt != nil {
		resp.PublishedAt = p.PublishedAt.Format(time.RFC3339)
	}
	return resp
}
