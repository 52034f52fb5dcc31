package models

import "time"

// ApplicationStatus is the pipeline stage of an application. The set is
// fixed but transitions are not constrained: any status may follow any
// other.
type ApplicationStatus string

const (
	StatusToApply   ApplicationStatus = "TO_APPLY"
	StatusApplied   ApplicationStatus = "APPLIED"
	StatusInterview ApplicationStatus = "INTERVIEW"
	StatusOffer     ApplicationStatus = "OFFER"
	StatusRejected  ApplicationStatus = "REJECTED"
)

// AllStatuses lists the five pipeline stages in board order.
func AllStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusToApply,
		StatusApplied,
		StatusInterview,
		StatusOffer,
		StatusRejected,
	}
}

// Valid reports whether s is one of the five known stages.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusToApply, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Application tracks one submission of a Job through the pipeline.
type Application struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"userId"`
	JobID  uint `gorm:"not null;index" json:"jobId"`
	Job    *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
	// CVID is nullable: deleting the referenced CV clears it instead of
	// deleting the application.
	CVID          *uint             `gorm:"index" json:"cvId,omitempty"`
	CV            *CV               `gorm:"foreignKey:CVID" json:"cv,omitempty"`
	Status        ApplicationStatus `gorm:"not null;default:TO_APPLY;index" json:"status"`
	AppliedDate   *time.Time        `json:"appliedDate,omitempty"`
	FollowUpDate  *time.Time        `json:"followUpDate,omitempty"`
	InterviewDate *time.Time        `json:"interviewDate,omitempty"`
	Notes         string            `gorm:"type:text" json:"notes,omitempty"`
	ContactPerson string            `json:"contactPerson,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ApplicationStatistics summarizes a user's pipeline. The rates are
// percentage strings with two decimals ("0.00" when there are no
// applications).
type ApplicationStatistics struct {
	Total         int64                       `json:"total"`
	ByStatus      map[ApplicationStatus]int64 `json:"byStatus"`
	SuccessRate   string                      `json:"successRate"`
	InterviewRate string                      `json:"interviewRate"`
}

// KanbanBoard partitions a user's applications into the five fixed status
// buckets for board-style display.
type KanbanBoard map[ApplicationStatus][]Application
