package repository

import (
	"context"
	"errors"

	"trackwerk/internal/models"

	"gorm.io/gorm"
)

// ApplicationFilter narrows an application listing. CompanyName and
// PositionTitle match against the joined job.
type ApplicationFilter struct {
	Status        models.ApplicationStatus
	CompanyName   string
	PositionTitle string
	Page          int
	Limit         int
}

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, userID, id uint) (*models.Application, error)
	Exists(ctx context.Context, userID, id uint) (bool, error)
	List(ctx context.Context, userID uint, filter ApplicationFilter) ([]models.Application, int64, error)
	ListAll(ctx context.Context, userID uint) ([]models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, userID, id uint) error
	CountByStatus(ctx context.Context, userID uint) (map[models.ApplicationStatus]int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository returns a new ApplicationRepository implementation.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, userID, id uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("CV").
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Application")
		}
		return nil, models.NewInternalError(err)
	}
	return &app, nil
}

func (r *applicationRepository) Exists(ctx context.Context, userID, id uint) (bool, error) {
	return ownedExists[models.Application](ctx, r.db, userID, id)
}

func (r *applicationRepository) List(ctx context.Context, userID uint, filter ApplicationFilter) ([]models.Application, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("applications.status = ?", filter.Status)
	}
	if filter.CompanyName != "" {
		query = query.Where("LOWER(jobs.company_name) LIKE ?", likePattern(filter.CompanyName))
	}
	if filter.PositionTitle != "" {
		query = query.Where("LOWER(jobs.position_title) LIKE ?", likePattern(filter.PositionTitle))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var apps []models.Application
	err := query.
		Preload("Job").
		Preload("CV").
		Order("applications.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return apps, total, nil
}

// ListAll returns every application of the user with its job preloaded,
// newest first. The Kanban board partitions this in one pass.
func (r *applicationRepository) ListAll(ctx context.Context, userID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

func (r *applicationRepository) Update(ctx context.Context, app *models.Application) error {
	if err := r.db.WithContext(ctx).Save(app).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the application and unlinks any cover letters that
// referenced it.
func (r *applicationRepository) Delete(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Application{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Application")
		}
		return tx.Model(&models.Anschreiben{}).
			Where("application_id = ?", id).
			Update("application_id", nil).Error
	})
	if err != nil {
		if models.IsNotFound(err, "Application") {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

// CountByStatus returns the per-status counts in one grouped query. Absent
// statuses are filled with zero so callers always see five buckets.
func (r *applicationRepository) CountByStatus(ctx context.Context, userID uint) (map[models.ApplicationStatus]int64, error) {
	type row struct {
		Status models.ApplicationStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[models.ApplicationStatus]int64, len(models.AllStatuses()))
	for _, status := range models.AllStatuses() {
		counts[status] = 0
	}
	for _, rec := range rows {
		counts[rec.Status] = rec.Count
	}
	return counts, nil
}
