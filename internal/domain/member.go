package domain

import "time"

// Member is a registered member of the organization (members table)
type Member struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"uniqueIndex;size:191" json:"email"`
	Password        string     `gorm:"size:255" json:"-"`
	FirstName       string     `gorm:"size:100" json:"first_name"`
	LastName        string     `gorm:"size:100" json:"last_name"`
	AvatarURL       string     `gorm:"size:500" json:"avatar_url,omitempty"`
	AvatarKey       string     `gorm:"size:500" json:"-"`
	Company         string     `gorm:"size:200" json:"company,omitempty"`
	JobTitle        string     `gorm:"size:200" json:"job_title,omitempty"`
	Bio             string     `gorm:"type:text" json:"bio,omitempty"`
	Location        string     `gorm:"size:200" json:"location,omitempty"`
	Website         string     `gorm:"size:500" json:"website,omitempty"`
	LinkedinURL     string     `gorm:"size:500" json:"linkedin_url,omitempty"`
	Phone           string     `gorm:"size:50" json:"-"`
	Skills          []string   `gorm:"serializer:json" json:"skills,omitempty"`
	Interests       []string   `gorm:"serializer:json" json:"interests,omitempty"`
	ExperienceYears int        `json:"experience_years,omitempty"`
	IsPublic        bool       `gorm:"default:true;index" json:"is_public"`
	LastLoginAt     *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// MemberResponse is the member's own account view
type MemberResponse struct {
	ID              uint     `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	AvatarURL       string   `json:"avatar_url,omitempty"`
	Company         string   `json:"company,omitempty"`
	JobTitle        string   `json:"job_title,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Location        string   `json:"location,omitempty"`
	Website         string   `json:"website,omitempty"`
	LinkedinURL     string   `json:"linkedin_url,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty"`
	IsPublic        bool     `json:"is_public"`
	CreatedAt       string   `json:"created_at"`
}

// ToResponse converts Member to MemberResponse
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:              m.ID,
		Email:           m.Email,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		AvatarURL:       m.AvatarURL,
		Company:         m.Company,
		JobTitle:        m.JobTitle,
		Bio:             m.Bio,
		Location:        m.Location,
		Website:         m.Website,
		LinkedinURL:     m.LinkedinURL,
		Phone:           m.Phone,
		Skills:          m.Skills,
		Interests:       m.Interests,
		ExperienceYears: m.ExperienceYears,
		IsPublic:        m.IsPublic,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
	}
}

// ProfileSummary is the compact participant/sender view used in
// directory cards and message payloads
type ProfileSummary struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Company   string `json:"company,omitempty"`
	JobTitle  string `json:"job_title,omitempty"`
}

// ToSummary converts Member to ProfileSummary
func (m *Member) ToSummary() *ProfileSummary {
	return &ProfileSummary{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		AvatarURL: m.AvatarURL,
		Company:   m.Company,
		JobTitle:  m.JobTitle,
	}
}

// ProfileResponse is the public directory profile view
type ProfileResponse struct {
	ID              uint     `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	AvatarURL       string   `json:"avatar_url,omitempty"`
	Company         string   `json:"company,omitempty"`
	JobTitle        string   `json:"job_title,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Location        string   `json:"location,omitempty"`
	Website         string   `json:"website,omitempty"`
	LinkedinURL     string   `json:"linkedin_url,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// ToProfile converts Member to ProfileResponse
func (m *Member) ToProfile() *ProfileResponse {
	return &ProfileResponse{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		AvatarURL:       m.AvatarURL,
		Company:         m.Company,
		JobTitle:        m.JobTitle,
		Bio:             m.Bio,
		Location:        m.Location,
		Website:         m.Website,
		LinkedinURL:     m.LinkedinURL,
		Skills:          m.Skills,
		Interests:       m.Interests,
		ExperienceYears: m.ExperienceYears,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
	}
}

// MemberStats aggregate directory statistics
type MemberStats struct {
	TotalMembers    int64 `json:"total_members"`
	UniqueCompanies int64 `json:"unique_companies"`
	UniqueLocations int64 `json:"unique_locations"`
}

// UpdateProfileRequest fields a member may change on their own profile
type UpdateProfileRequest struct {
	FirstName       *string   `json:"first_name"`
	LastName        *string   `json:"last_name"`
	Company         *string   `json:"company"`
	JobTitle        *string   `json:"job_title"`
	Bio             *string   `json:"bio"`
	Location        *string   `json:"location"`
	Website         *string   `json:"website"`
	LinkedinURL     *string   `json:"linkedin_url"`
	Phone           *string   `json:"phone"`
	Skills          *[]string `json:"skills"`
	Interests       *[]string `json:"interests"`
	ExperienceYears *int      `json:"experience_years"`
	IsPublic        *bool     `json:"is_public"`
}
