package service

import (
	"context"
	"strings"

	"trackwerk/internal/cache"
	"trackwerk/internal/models"
	"trackwerk/internal/repository"
)

// CVService handles stored CVs and the single-default invariant.
type CVService struct {
	cvRepo repository.CVRepository
}

// CreateCVInput is the payload for storing a CV.
type CreateCVInput struct {
	UserID       uint
	Title        string              `json:"title"`
	PersonalInfo models.PersonalInfo `json:"personalInfo"`
	Experience   []models.Experience `json:"experience"`
	Education    []models.Education  `json:"education"`
	Skills       []models.Skill      `json:"skills"`
	Languages    []models.Language   `json:"languages"`
	IsDefault    bool                `json:"isDefault"`
}

// UpdateCVInput carries a partial update; nil fields stay untouched.
type UpdateCVInput struct {
	Title        *string              `json:"title"`
	PersonalInfo *models.PersonalInfo `json:"personalInfo"`
	Experience   *[]models.Experience `json:"experience"`
	Education    *[]models.Education  `json:"education"`
	Skills       *[]models.Skill      `json:"skills"`
	Languages    *[]models.Language   `json:"languages"`
	IsDefault    *bool                `json:"isDefault"`
}

// NewCVService returns a new CVService.
func NewCVService(cvRepo repository.CVRepository) *CVService {
	return &CVService{cvRepo: cvRepo}
}

// Create stores a CV. When IsDefault is set the repository transactionally
// demotes every other CV of the user.
func (s *CVService) Create(ctx context.Context, in CreateCVInput) (*models.CV, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}

	cv := &models.CV{
		UserID:       in.UserID,
		Title:        strings.TrimSpace(in.Title),
		PersonalInfo: in.PersonalInfo,
		Experience:   in.Experience,
		Education:    in.Education,
		Skills:       in.Skills,
		Languages:    in.Languages,
		IsDefault:    in.IsDefault,
	}
	if err := s.cvRepo.Create(ctx, cv); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, in.UserID)
	return cv, nil
}

// Get returns one of the caller's CVs.
func (s *CVService) Get(ctx context.Context, userID, id uint) (*models.CV, error) {
	return s.cvRepo.GetByID(ctx, userID, id)
}

// GetDefault returns the caller's default CV, or nil when none is set.
func (s *CVService) GetDefault(ctx context.Context, userID uint) (*models.CV, error) {
	return s.cvRepo.GetDefault(ctx, userID)
}

// List returns every CV of the caller, default first.
func (s *CVService) List(ctx context.Context, userID uint) ([]models.CV, error) {
	return s.cvRepo.List(ctx, userID)
}

// Update applies a partial update. At least one field must be present.
func (s *CVService) Update(ctx context.Context, userID, id uint, in UpdateCVInput) (*models.CV, error) {
	if in.Title == nil && in.PersonalInfo == nil && in.Experience == nil &&
		in.Education == nil && in.Skills == nil && in.Languages == nil && in.IsDefault == nil {
		return nil, models.NewValidationError("At least one field must be provided")
	}

	cv, err := s.cvRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		cv.Title = strings.TrimSpace(*in.Title)
	}
	if in.PersonalInfo != nil {
		cv.PersonalInfo = *in.PersonalInfo
	}
	if in.Experience != nil {
		cv.Experience = *in.Experience
	}
	if in.Education != nil {
		cv.Education = *in.Education
	}
	if in.Skills != nil {
		cv.Skills = *in.Skills
	}
	if in.Languages != nil {
		cv.Languages = *in.Languages
	}
	if in.IsDefault != nil {
		cv.IsDefault = *in.IsDefault
	}

	if err := s.cvRepo.Update(ctx, cv); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, userID)
	return cv, nil
}

// SetDefault promotes the CV to the user's single default.
func (s *CVService) SetDefault(ctx context.Context, userID, id uint) (*models.CV, error) {
	cv, err := s.cvRepo.SetDefault(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, userID)
	return cv, nil
}

// Duplicate copies the CV's content into a new one. The copy is never the
// default, regardless of the source.
func (s *CVService) Duplicate(ctx context.Context, userID, id uint, title string) (*models.CV, error) {
	source, err := s.cvRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = source.Title + " (Copy)"
	}

	clone := &models.CV{
		UserID:       userID,
		Title:        title,
		PersonalInfo: source.PersonalInfo,
		Experience:   source.Experience,
		Education:    source.Education,
		Skills:       source.Skills,
		Languages:    source.Languages,
		IsDefault:    false,
	}
	if err := s.cvRepo.Create(ctx, clone); err != nil {
		return nil, err
	}
	cache.InvalidateUserStats(ctx, userID)
	return clone, nil
}

// Delete removes the CV; applications referencing it are unlinked.
func (s *CVService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.cvRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	cache.InvalidateUserStats(ctx, userID)
	return nil
}

// Statistics returns cached aggregate counts for the user's CVs.
func (s *CVService) Statistics(ctx context.Context, userID uint) (*models.CVStatistics, error) {
	return cache.Aside(ctx, cache.CVStatsKey(userID), cache.StatsTTL, func() (*models.CVStatistics, error) {
		return s.cvRepo.Statistics(ctx, userID)
	})
}
