package models

import "time"

// PersonalInfo is the header block of a CV.
type PersonalInfo struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	LinkedIn    string `json:"linkedIn,omitempty"`
	GitHub      string `json:"github,omitempty"`
	Website     string `json:"website,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// Experience is one employment entry of a CV.
type Experience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is one education entry of a CV.
type Education struct {
	ID           string `json:"id"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	Location     string `json:"location,omitempty"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate,omitempty"`
	Current      bool   `json:"current"`
	Grade        string `json:"grade,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Skill is one skill entry of a CV.
type Skill struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"`
}

// Language is one language entry of a CV (CEFR levels plus "Native").
type Language struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       string `json:"level"`
	Description string `json:"description,omitempty"`
}

// CV is a stored résumé. Section lists keep their order; at most one CV per
// user carries IsDefault=true, enforced transactionally in the repository.
type CV struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"not null;index" json:"userId"`
	Title        string       `gorm:"not null" json:"title"`
	PersonalInfo PersonalInfo `gorm:"serializer:json;type:text" json:"personalInfo"`
	Experience   []Experience `gorm:"serializer:json;type:text" json:"experience"`
	Education    []Education  `gorm:"serializer:json;type:text" json:"education"`
	Skills       []Skill      `gorm:"serializer:json;type:text" json:"skills"`
	Languages    []Language   `gorm:"serializer:json;type:text" json:"languages"`
	IsDefault    bool         `gorm:"not null;default:false;index" json:"isDefault"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// CVSummary is a trimmed view used in statistics payloads.
type CVSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// CVStatistics summarizes a user's CVs.
type CVStatistics struct {
	Total               int64      `json:"total"`
	DefaultCV           *CVSummary `json:"defaultCV"`
	WithApplications    int64      `json:"withApplications"`
	WithoutApplications int64      `json:"withoutApplications"`
}
