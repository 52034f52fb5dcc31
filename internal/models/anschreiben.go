package models

import "time"

// Anschreiben is a German cover letter, optionally linked to one of the
// owner's applications. Deleting the application clears the link.
type Anschreiben struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        uint         `gorm:"not null;index" json:"userId"`
	ApplicationID *uint        `gorm:"index" json:"applicationId,omitempty"`
	Application   *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Title         string       `gorm:"not null" json:"title"`
	Content       string       `gorm:"type:text;not null" json:"content"`
	IsTemplate    bool         `gorm:"not null;default:false" json:"isTemplate"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// AnschreibenStatistics summarizes a user's cover letters.
type AnschreibenStatistics struct {
	Total     int64 `json:"total"`
	Templates int64 `json:"templates"`
	Linked    int64 `json:"linkedToApplications"`
	NotLinked int64 `json:"notLinked"`
}

// JobStatistics summarizes a user's tracked jobs.
type JobStatistics struct {
	Total               int64 `json:"total"`
	Saved               int64 `json:"saved"`
	WithApplications    int64 `json:"withApplications"`
	WithoutApplications int64 `json:"withoutApplications"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}
