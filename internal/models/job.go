package models

import "time"

// Job represents a tracked job posting owned by a single user.
type Job struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	UserID         uint     `gorm:"not null;index" json:"userId"`
	CompanyName    string   `gorm:"not null" json:"companyName"`
	PositionTitle  string   `gorm:"not null" json:"positionTitle"`
	JobDescription string   `gorm:"type:text" json:"jobDescription,omitempty"`
	Location       string   `json:"location,omitempty"`
	SalaryRange    string   `json:"salaryRange,omitempty"`
	TechStack      []string `gorm:"serializer:json;type:text" json:"techStack"`
	SourceURL      string   `json:"sourceUrl,omitempty"`
	SourcePlatform string   `json:"sourcePlatform,omitempty"`
	// IsSaved defaults to true on create; pointer-free bool with the default
	// applied in the service so zero-value structs stay predictable.
	IsSaved   bool      `gorm:"not null;default:true" json:"isSaved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Applications []Application `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}
