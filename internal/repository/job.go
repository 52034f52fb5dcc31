package repository

import (
	"context"

	"trackwerk/internal/models"

	"gorm.io/gorm"
)

// JobFilter narrows a job listing. String fields match case-insensitive
// substrings; TechStack entries must all appear in the serialized column.
type JobFilter struct {
	CompanyName   string
	PositionTitle string
	Location      string
	TechStack     []string
	IsSaved       *bool
	Page          int
	Limit         int
}

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, userID, id uint) (*models.Job, error)
	Exists(ctx context.Context, userID, id uint) (bool, error)
	List(ctx context.Context, userID uint, filter JobFilter) ([]models.Job, int64, error)
	Search(ctx context.Context, userID uint, query string, limit int) ([]models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, userID, id uint) error
	Statistics(ctx context.Context, userID uint) (*models.JobStatistics, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository returns a new JobRepository implementation.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, userID, id uint) (*models.Job, error) {
	return firstOwned[models.Job](ctx, r.db, userID, id, "Job")
}

func (r *jobRepository) Exists(ctx context.Context, userID, id uint) (bool, error) {
	return ownedExists[models.Job](ctx, r.db, userID, id)
}

func (r *jobRepository) List(ctx context.Context, userID uint, filter JobFilter) ([]models.Job, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{}).Where("user_id = ?", userID)

	if filter.CompanyName != "" {
		query = query.Where("LOWER(company_name) LIKE ?", likePattern(filter.CompanyName))
	}
	if filter.PositionTitle != "" {
		query = query.Where("LOWER(position_title) LIKE ?", likePattern(filter.PositionTitle))
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", likePattern(filter.Location))
	}
	// TechStack is a JSON-serialized text column; substring match per entry
	// keeps the filter portable between Postgres and SQLite.
	for _, tech := range filter.TechStack {
		query = query.Where("LOWER(tech_stack) LIKE ?", likePattern(tech))
	}
	if filter.IsSaved != nil {
		query = query.Where("is_saved = ?", *filter.IsSaved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var jobs []models.Job
	err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return jobs, total, nil
}

func (r *jobRepository) Search(ctx context.Context, userID uint, query string, limit int) ([]models.Job, error) {
	pattern := likePattern(query)
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(company_name) LIKE ? OR LOWER(position_title) LIKE ? OR LOWER(job_description) LIKE ?",
			pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the job together with its applications; cover letters that
// pointed at those applications are unlinked, not deleted.
func (r *jobRepository) Delete(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Job{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Job")
		}

		var appIDs []uint
		if err := tx.Model(&models.Application{}).
			Where("job_id = ? AND user_id = ?", id, userID).
			Pluck("id", &appIDs).Error; err != nil {
			return err
		}
		if len(appIDs) == 0 {
			return nil
		}

		if err := tx.Model(&models.Anschreiben{}).
			Where("application_id IN ?", appIDs).
			Update("application_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", appIDs).Delete(&models.Application{}).Error
	})
	if err != nil {
		if models.IsNotFound(err, "Job") {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) Statistics(ctx context.Context, userID uint) (*models.JobStatistics, error) {
	stats := &models.JobStatistics{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Job{}).
		Where("user_id = ?", userID).
		Count(&stats.Total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.Job{}).
		Where("user_id = ? AND is_saved = ?", userID, true).
		Count(&stats.Saved).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.Job{}).
		Where("user_id = ?", userID).
		Where("id IN (?)", db.Model(&models.Application{}).
			Select("job_id").
			Where("user_id = ?", userID)).
		Count(&stats.WithApplications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	stats.WithoutApplications = stats.Total - stats.WithApplications
	return stats, nil
}
