package service

import (
	"context"
	"fmt"
	"strings"

	"trackwerk/internal/ai"
	"trackwerk/internal/cache"
	"trackwerk/internal/middleware"
	"trackwerk/internal/models"
	"trackwerk/internal/repository"
)

// AnschreibenService handles manual and AI-assisted cover letters.
type AnschreibenService struct {
	anschreibenRepo repository.AnschreibenRepository
	appRepo         repository.ApplicationRepository
	generator       ai.Generator
	aiConfigured    func() bool
}

// CreateAnschreibenInput is the payload for storing a cover letter manually.
type CreateAnschreibenInput struct {
	UserID        uint
	ApplicationID *uint  `json:"applicationId"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	IsTemplate    bool   `json:"isTemplate"`
}

// GenerateAnschreibenInput is the payload for AI drafting. Job and applicant
// details come from the request, not from stored entities.
type GenerateAnschreibenInput struct {
	UserID         uint
	ApplicationID  *uint  `json:"applicationId"`
	JobDescription string `json:"jobDescription"`
	CompanyName    string `json:"companyName"`
	PositionTitle  string `json:"positionTitle"`
	ApplicantName  string `json:"applicantName"`
	ApplicantEmail string `json:"applicantEmail"`
	ApplicantPhone string `json:"applicantPhone"`
	Experience     string `json:"experience"`
	Skills         string `json:"skills"`
	Education      string `json:"education"`
	Motivation     string `json:"motivation"`
	SaveAsTemplate bool   `json:"saveAsTemplate"`
}

// UpdateAnschreibenInput carries a partial update; nil fields stay untouched.
// An ApplicationID of 0 clears the link.
type UpdateAnschreibenInput struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	IsTemplate    *bool   `json:"isTemplate"`
	ApplicationID *uint   `json:"applicationId"`
}

// NewAnschreibenService returns a new AnschreibenService.
func NewAnschreibenService(
	anschreibenRepo repository.AnschreibenRepository,
	appRepo repository.ApplicationRepository,
	generator ai.Generator,
	aiConfigured func() bool,
) *AnschreibenService {
	return &AnschreibenService{
		anschreibenRepo: anschreibenRepo,
		appRepo:         appRepo,
		generator:       generator,
		aiConfigured:    aiConfigured,
	}
}

// checkApplicationRef verifies the application belongs to the caller.
func (s *AnschreibenService) checkApplicationRef(ctx context.Context, userID, applicationID uint) error {
	ok, err := s.appRepo.Exists(ctx, userID, applicationID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Application")
	}
	return nil
}

// Create stores a cover letter without AI involvement.
func (s *AnschreibenService) Create(ctx context.Context, in CreateAnschreibenInput) (*models.Anschreiben, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if in.ApplicationID != nil {
		if err := s.checkApplicationRef(ctx, in.UserID, *in.ApplicationID); err != nil {
			return nil, err
		}
	}

	letter := &models.Anschreiben{
		UserID:        in.UserID,
		ApplicationID: in.ApplicationID,
		Title:         strings.TrimSpace(in.Title),
		Content:       in.Content,
		IsTemplate:    in.IsTemplate,
	}
	if err := s.anschreibenRepo.Create(ctx, letter); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, in.UserID)
	return letter, nil
}

// Generate drafts a cover letter through the AI collaborator and persists
// the output verbatim. One attempt, no retry.
func (s *AnschreibenService) Generate(ctx context.Context, in GenerateAnschreibenInput) (*models.Anschreiben, error) {
	if !s.aiConfigured() {
		return nil, models.NewAINotConfiguredError()
	}

	if strings.TrimSpace(in.CompanyName) == "" ||
		strings.TrimSpace(in.PositionTitle) == "" ||
		strings.TrimSpace(in.JobDescription) == "" {
		return nil, models.NewValidationError("Company name, position title and job description are required")
	}
	if strings.TrimSpace(in.ApplicantName) == "" ||
		strings.TrimSpace(in.ApplicantEmail) == "" ||
		strings.TrimSpace(in.ApplicantPhone) == "" {
		return nil, models.NewValidationError("Applicant name, email and phone are required")
	}
	if in.ApplicationID != nil {
		if err := s.checkApplicationRef(ctx, in.UserID, *in.ApplicationID); err != nil {
			return nil, err
		}
	}

	content, err := s.generator.GenerateCoverLetter(ctx, ai.CoverLetterInput{
		JobDescription: in.JobDescription,
		CompanyName:    in.CompanyName,
		PositionTitle:  in.PositionTitle,
		ApplicantName:  in.ApplicantName,
		ApplicantEmail: in.ApplicantEmail,
		ApplicantPhone: in.ApplicantPhone,
		Experience:     in.Experience,
		Skills:         in.Skills,
		Education:      in.Education,
		Motivation:     in.Motivation,
	})
	if err != nil {
		middleware.AIRequests.WithLabelValues("error").Inc()
		middleware.Logger.ErrorContext(ctx, "cover letter generation failed", "error", err)
		return nil, models.NewAIGenerationError(err)
	}
	middleware.AIRequests.WithLabelValues("ok").Inc()

	letter := &models.Anschreiben{
		UserID:        in.UserID,
		ApplicationID: in.ApplicationID,
		Title:         fmt.Sprintf("Anschreiben - %s bei %s", in.PositionTitle, in.CompanyName),
		Content:       content,
		IsTemplate:    in.SaveAsTemplate,
	}
	if err := s.anschreibenRepo.Create(ctx, letter); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, in.UserID)
	return letter, nil
}

// Refine reworks an existing letter per the given instructions and stores
// the improved content in place.
func (s *AnschreibenService) Refine(ctx context.Context, userID, id uint, instructions string) (*models.Anschreiben, error) {
	if !s.aiConfigured() {
		return nil, models.NewAINotConfiguredError()
	}
	if strings.TrimSpace(instructions) == "" {
		return nil, models.NewValidationError("Improvement instructions are required")
	}

	letter, err := s.anschreibenRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	improved, err := s.generator.RefineCoverLetter(ctx, letter.Content, instructions)
	if err != nil {
		middleware.AIRequests.WithLabelValues("error").Inc()
		middleware.Logger.ErrorContext(ctx, "cover letter refinement failed", "error", err)
		return nil, models.NewAIGenerationError(err)
	}
	middleware.AIRequests.WithLabelValues("ok").Inc()

	letter.Content = improved
	if err := s.anschreibenRepo.Update(ctx, letter); err != nil {
		return nil, err
	}
	return letter, nil
}

// Get returns one of the caller's cover letters.
func (s *AnschreibenService) Get(ctx context.Context, userID, id uint) (*models.Anschreiben, error) {
	return s.anschreibenRepo.GetByID(ctx, userID, id)
}

// GetByApplication lists the cover letters linked to one of the caller's
// applications.
func (s *AnschreibenService) GetByApplication(ctx context.Context, userID, applicationID uint) ([]models.Anschreiben, error) {
	if err := s.checkApplicationRef(ctx, userID, applicationID); err != nil {
		return nil, err
	}
	return s.anschreibenRepo.GetByApplication(ctx, userID, applicationID)
}

// List returns the caller's cover letters, optionally filtered by template
// flag.
func (s *AnschreibenService) List(ctx context.Context, userID uint, filter repository.AnschreibenFilter) ([]models.Anschreiben, error) {
	return s.anschreibenRepo.List(ctx, userID, filter)
}

// Update applies a partial update. A changed application link is
// re-validated. At least one field must be present.
func (s *AnschreibenService) Update(ctx context.Context, userID, id uint, in UpdateAnschreibenInput) (*models.Anschreiben, error) {
	if in.Title == nil && in.Content == nil && in.IsTemplate == nil && in.ApplicationID == nil {
		return nil, models.NewValidationError("At least one field must be provided")
	}

	letter, err := s.anschreibenRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		letter.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		letter.Content = *in.Content
	}
	if in.IsTemplate != nil {
		letter.IsTemplate = *in.IsTemplate
	}
	if in.ApplicationID != nil {
		if *in.ApplicationID == 0 {
			letter.ApplicationID = nil
		} else {
			if err := s.checkApplicationRef(ctx, userID, *in.ApplicationID); err != nil {
				return nil, err
			}
			letter.ApplicationID = in.ApplicationID
		}
	}

	if err := s.anschreibenRepo.Update(ctx, letter); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, userID)
	return letter, nil
}

// Duplicate copies the letter's content into a new one. The copy is never
// linked to an application, even when the source is.
func (s *AnschreibenService) Duplicate(ctx context.Context, userID, id uint, title string) (*models.Anschreiben, error) {
	source, err := s.anschreibenRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = source.Title + " (Copy)"
	}

	clone := &models.Anschreiben{
		UserID:     userID,
		Title:      title,
		Content:    source.Content,
		IsTemplate: source.IsTemplate,
	}
	if err := s.anschreibenRepo.Create(ctx, clone); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, userID)
	return clone, nil
}

// Delete removes the cover letter.
func (s *AnschreibenService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.anschreibenRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	cache.InvalidateUserStats(ctx, userID)
	return nil
}

// Statistics returns cached aggregate counts for the user's cover letters.
func (s *AnschreibenService) Statistics(ctx context.Context, userID uint) (*models.AnschreibenStatistics, error) {
	return cache.Aside(ctx, cache.AnschreibenStatsKey(userID), cache.StatsTTL, func() (*models.AnschreibenStatistics, error) {
		return s.anschreibenRepo.Statistics(ctx, userID)
	})
}
