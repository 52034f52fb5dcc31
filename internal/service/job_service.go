package service

import (
	"context"
	"strings"

	"trackwerk/internal/cache"
	"trackwerk/internal/models"
	"trackwerk/internal/repository"
)

// JobService handles tracked job postings.
type JobService struct {
	jobRepo repository.JobRepository
}

// CreateJobInput is the payload for recording a job posting.
type CreateJobInput struct {
	UserID         uint
	CompanyName    string   `json:"companyName"`
	PositionTitle  string   `json:"positionTitle"`
	JobDescription string   `json:"jobDescription"`
	Location       string   `json:"location"`
	SalaryRange    string   `json:"salaryRange"`
	TechStack      []string `json:"techStack"`
	SourceURL      string   `json:"sourceUrl"`
	SourcePlatform string   `json:"sourcePlatform"`
	IsSaved        *bool    `json:"isSaved"`
}

// UpdateJobInput carries a partial update; nil fields stay untouched.
type UpdateJobInput struct {
	CompanyName    *string   `json:"companyName"`
	PositionTitle  *string   `json:"positionTitle"`
	JobDescription *string   `json:"jobDescription"`
	Location       *string   `json:"location"`
	SalaryRange    *string   `json:"salaryRange"`
	TechStack      *[]string `json:"techStack"`
	SourceURL      *string   `json:"sourceUrl"`
	SourcePlatform *string   `json:"sourcePlatform"`
	IsSaved        *bool     `json:"isSaved"`
}

// NewJobService returns a new JobService.
func NewJobService(jobRepo repository.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// Create records a job posting for the user. IsSaved defaults to true.
func (s *JobService) Create(ctx context.Context, in CreateJobInput) (*models.Job, error) {
	if strings.TrimSpace(in.CompanyName) == "" {
		return nil, models.NewValidationError("Company name is required")
	}
	if strings.TrimSpace(in.PositionTitle) == "" {
		return nil, models.NewValidationError("Position title is required")
	}

	isSaved := true
	if in.IsSaved != nil {
		isSaved = *in.IsSaved
	}

	job := &models.Job{
		UserID:         in.UserID,
		CompanyName:    strings.TrimSpace(in.CompanyName),
		PositionTitle:  strings.TrimSpace(in.PositionTitle),
		JobDescription: in.JobDescription,
		Location:       in.Location,
		SalaryRange:    in.SalaryRange,
		TechStack:      in.TechStack,
		SourceURL:      in.SourceURL,
		SourcePlatform: in.SourcePlatform,
		IsSaved:        isSaved,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, in.UserID)
	return job, nil
}

// Get returns one of the caller's jobs.
func (s *JobService) Get(ctx context.Context, userID, id uint) (*models.Job, error) {
	return s.jobRepo.GetByID(ctx, userID, id)
}

// List returns a filtered page of the caller's jobs.
func (s *JobService) List(ctx context.Context, userID uint, filter repository.JobFilter) ([]models.Job, models.Pagination, error) {
	filter.Page, filter.Limit = normalizePagination(filter.Page, filter.Limit)

	jobs, total, err := s.jobRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return jobs, buildPagination(filter.Page, filter.Limit, total), nil
}

// Search does a case-insensitive substring search over company, position and
// description.
func (s *JobService) Search(ctx context.Context, userID uint, query string, limit int) ([]models.Job, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.jobRepo.Search(ctx, userID, strings.TrimSpace(query), limit)
}

// Update applies a partial update. At least one field must be present.
func (s *JobService) Update(ctx context.Context, userID, id uint, in UpdateJobInput) (*models.Job, error) {
	if in.CompanyName == nil && in.PositionTitle == nil && in.JobDescription == nil &&
		in.Location == nil && in.SalaryRange == nil && in.TechStack == nil &&
		in.SourceURL == nil && in.SourcePlatform == nil && in.IsSaved == nil {
		return nil, models.NewValidationError("At least one field must be provided")
	}

	job, err := s.jobRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.CompanyName != nil {
		if strings.TrimSpace(*in.CompanyName) == "" {
			return nil, models.NewValidationError("Company name cannot be empty")
		}
		job.CompanyName = strings.TrimSpace(*in.CompanyName)
	}
	if in.PositionTitle != nil {
		if strings.TrimSpace(*in.PositionTitle) == "" {
			return nil, models.NewValidationError("Position title cannot be empty")
		}
		job.PositionTitle = strings.TrimSpace(*in.PositionTitle)
	}
	if in.JobDescription != nil {
		job.JobDescription = *in.JobDescription
	}
	if in.Location != nil {
		job.Location = *in.Location
	}
	if in.SalaryRange != nil {
		job.SalaryRange = *in.SalaryRange
	}
	if in.TechStack != nil {
		job.TechStack = *in.TechStack
	}
	if in.SourceURL != nil {
		job.SourceURL = *in.SourceURL
	}
	if in.SourcePlatform != nil {
		job.SourcePlatform = *in.SourcePlatform
	}
	if in.IsSaved != nil {
		job.IsSaved = *in.IsSaved
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, userID)
	return job, nil
}

// Delete removes the job and, through the repository cascade, its
// applications.
func (s *JobService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.jobRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	cache.InvalidateUserStats(ctx, userID)
	return nil
}

// Statistics returns cached aggregate counts for the user's jobs.
func (s *JobService) Statistics(ctx context.Context, userID uint) (*models.JobStatistics, error) {
	return cache.Aside(ctx, cache.JobStatsKey(userID), cache.StatsTTL, func() (*models.JobStatistics, error) {
		return s.jobRepo.Statistics(ctx, userID)
	})
}
