package service

import (
	"context"
	"fmt"
	"time"

	"trackwerk/internal/cache"
	"trackwerk/internal/models"
	"trackwerk/internal/repository"
)

// ApplicationService handles the status pipeline of job applications.
type ApplicationService struct {
	appRepo repository.ApplicationRepository
	jobRepo repository.JobRepository
	cvRepo  repository.CVRepository
}

// CreateApplicationInput is the payload for opening an application.
type CreateApplicationInput struct {
	UserID        uint
	JobID         uint                     `json:"jobId"`
	CVID          *uint                    `json:"cvId"`
	Status        models.ApplicationStatus `json:"status"`
	AppliedDate   *time.Time               `json:"appliedDate"`
	FollowUpDate  *time.Time               `json:"followUpDate"`
	InterviewDate *time.Time               `json:"interviewDate"`
	Notes         string                   `json:"notes"`
	ContactPerson string                   `json:"contactPerson"`
}

// UpdateApplicationInput carries a partial update; nil fields stay untouched.
// A CVID of 0 clears the CV reference.
type UpdateApplicationInput struct {
	JobID         *uint                     `json:"jobId"`
	CVID          *uint                     `json:"cvId"`
	Status        *models.ApplicationStatus `json:"status"`
	AppliedDate   *time.Time                `json:"appliedDate"`
	FollowUpDate  *time.Time                `json:"followUpDate"`
	InterviewDate *time.Time                `json:"interviewDate"`
	Notes         *string                   `json:"notes"`
	ContactPerson *string                   `json:"contactPerson"`
}

// NewApplicationService returns a new ApplicationService.
func NewApplicationService(
	appRepo repository.ApplicationRepository,
	jobRepo repository.JobRepository,
	cvRepo repository.CVRepository,
) *ApplicationService {
	return &ApplicationService{appRepo: appRepo, jobRepo: jobRepo, cvRepo: cvRepo}
}

// checkJobRef verifies the job belongs to the caller.
func (s *ApplicationService) checkJobRef(ctx context.Context, userID, jobID uint) error {
	ok, err := s.jobRepo.Exists(ctx, userID, jobID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Job")
	}
	return nil
}

// checkCVRef verifies the CV belongs to the caller.
func (s *ApplicationService) checkCVRef(ctx context.Context, userID, cvID uint) error {
	ok, err := s.cvRepo.Exists(ctx, userID, cvID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("CV")
	}
	return nil
}

// Create opens an application against one of the caller's jobs. Status
// defaults to TO_APPLY.
func (s *ApplicationService) Create(ctx context.Context, in CreateApplicationInput) (*models.Application, error) {
	if in.JobID == 0 {
		return nil, models.NewValidationError("Job ID is required")
	}
	if err := s.checkJobRef(ctx, in.UserID, in.JobID); err != nil {
		return nil, err
	}
	if in.CVID != nil {
		if err := s.checkCVRef(ctx, in.UserID, *in.CVID); err != nil {
			return nil, err
		}
	}

	status := in.Status
	if status == "" {
		status = models.StatusToApply
	}
	if !status.Valid() {
		return nil, models.NewValidationError(fmt.Sprintf("Invalid status %q", status))
	}

	app := &models.Application{
		UserID:        in.UserID,
		JobID:         in.JobID,
		CVID:          in.CVID,
		Status:        status,
		AppliedDate:   in.AppliedDate,
		FollowUpDate:  in.FollowUpDate,
		InterviewDate: in.InterviewDate,
		Notes:         in.Notes,
		ContactPerson: in.ContactPerson,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, in.UserID)
	return s.appRepo.GetByID(ctx, in.UserID, app.ID)
}

// Get returns one of the caller's applications with its job and CV.
func (s *ApplicationService) Get(ctx context.Context, userID, id uint) (*models.Application, error) {
	return s.appRepo.GetByID(ctx, userID, id)
}

// List returns a filtered page of the caller's applications.
func (s *ApplicationService) List(ctx context.Context, userID uint, filter repository.ApplicationFilter) ([]models.Application, models.Pagination, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, models.Pagination{}, models.NewValidationError(fmt.Sprintf("Invalid status %q", filter.Status))
	}
	filter.Page, filter.Limit = normalizePagination(filter.Page, filter.Limit)

	apps, total, err := s.appRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return apps, buildPagination(filter.Page, filter.Limit, total), nil
}

// Update applies a partial update. Changed references are re-validated
// against the caller. At least one field must be present.
func (s *ApplicationService) Update(ctx context.Context, userID, id uint, in UpdateApplicationInput) (*models.Application, error) {
	if in.JobID == nil && in.CVID == nil && in.Status == nil &&
		in.AppliedDate == nil && in.FollowUpDate == nil && in.InterviewDate == nil &&
		in.Notes == nil && in.ContactPerson == nil {
		return nil, models.NewValidationError("At least one field must be provided")
	}

	app, err := s.appRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.JobID != nil {
		if err := s.checkJobRef(ctx, userID, *in.JobID); err != nil {
			return nil, err
		}
		app.JobID = *in.JobID
	}
	if in.CVID != nil {
		if *in.CVID == 0 {
			app.CVID = nil
		} else {
			if err := s.checkCVRef(ctx, userID, *in.CVID); err != nil {
				return nil, err
			}
			app.CVID = in.CVID
		}
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, models.NewValidationError(fmt.Sprintf("Invalid status %q", *in.Status))
		}
		app.Status = *in.Status
	}
	if in.AppliedDate != nil {
		app.AppliedDate = in.AppliedDate
	}
	if in.FollowUpDate != nil {
		app.FollowUpDate = in.FollowUpDate
	}
	if in.InterviewDate != nil {
		app.InterviewDate = in.InterviewDate
	}
	if in.Notes != nil {
		app.Notes = *in.Notes
	}
	if in.ContactPerson != nil {
		app.ContactPerson = *in.ContactPerson
	}

	// Detach preloaded associations so Save does not write them back.
	app.Job = nil
	app.CV = nil

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, userID)
	return s.appRepo.GetByID(ctx, userID, id)
}

// UpdateStatus moves the application to a new pipeline stage. Any stage may
// follow any other.
func (s *ApplicationService) UpdateStatus(ctx context.Context, userID, id uint, status models.ApplicationStatus) (*models.Application, error) {
	if status == "" {
		return nil, models.NewValidationError("Status is required")
	}
	return s.Update(ctx, userID, id, UpdateApplicationInput{Status: &status})
}

// Delete removes the application; linked cover letters survive unlinked.
func (s *ApplicationService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.appRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	cache.InvalidateUserStats(ctx, userID)
	return nil
}

// Statistics returns the cached pipeline summary. Rates are two-decimal
// percentage strings; "0.00" when there are no applications.
func (s *ApplicationService) Statistics(ctx context.Context, userID uint) (*models.ApplicationStatistics, error) {
	return cache.Aside(ctx, cache.ApplicationStatsKey(userID), cache.StatsTTL, func() (*models.ApplicationStatistics, error) {
		counts, err := s.appRepo.CountByStatus(ctx, userID)
		if err != nil {
			return nil, err
		}

		var total int64
		for _, c := range counts {
			total += c
		}

		stats := &models.ApplicationStatistics{
			Total:         total,
			ByStatus:      counts,
			SuccessRate:   "0.00",
			InterviewRate: "0.00",
		}
		if total > 0 {
			offers := counts[models.StatusOffer]
			interviews := counts[models.StatusInterview]
			stats.SuccessRate = fmt.Sprintf("%.2f", float64(offers)/float64(total)*100)
			stats.InterviewRate = fmt.Sprintf("%.2f", float64(interviews+offers)/float64(total)*100)
		}
		return stats, nil
	})
}

// Kanban partitions every application of the user into the five status
// buckets. Every bucket is present even when empty.
func (s *ApplicationService) Kanban(ctx context.Context, userID uint) (models.KanbanBoard, error) {
	return cache.Aside(ctx, cache.KanbanKey(userID), cache.KanbanTTL, func() (models.KanbanBoard, error) {
		apps, err := s.appRepo.ListAll(ctx, userID)
		if err != nil {
			return nil, err
		}

		board := make(models.KanbanBoard, len(models.AllStatuses()))
		for _, status := range models.AllStatuses() {
			board[status] = []models.Application{}
		}
		for _, app := range apps {
			board[app.Status] = append(board[app.Status], app)
		}
		return board, nil
	})
}
