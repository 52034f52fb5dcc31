package repository

import (
	"context"

	"trackwerk/internal/models"

	"gorm.io/gorm"
)

// AnschreibenFilter narrows a cover letter listing.
type AnschreibenFilter struct {
	IsTemplate *bool
}

// AnschreibenRepository defines persistence operations for cover letters.
type AnschreibenRepository interface {
	Create(ctx context.Context, a *models.Anschreiben) error
	GetByID(ctx context.Context, userID, id uint) (*models.Anschreiben, error)
	GetByApplication(ctx context.Context, userID, applicationID uint) ([]models.Anschreiben, error)
	List(ctx context.Context, userID uint, filter AnschreibenFilter) ([]models.Anschreiben, error)
	Update(ctx context.Context, a *models.Anschreiben) error
	Delete(ctx context.Context, userID, id uint) error
	Statistics(ctx context.Context, userID uint) (*models.AnschreibenStatistics, error)
}

type anschreibenRepository struct {
	db *gorm.DB
}

// NewAnschreibenRepository returns a new AnschreibenRepository implementation.
func NewAnschreibenRepository(db *gorm.DB) AnschreibenRepository {
	return &anschreibenRepository{db: db}
}

func (r *anschreibenRepository) Create(ctx context.Context, a *models.Anschreiben) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *anschreibenRepository) GetByID(ctx context.Context, userID, id uint) (*models.Anschreiben, error) {
	return firstOwned[models.Anschreiben](ctx, r.db, userID, id, "Anschreiben")
}

func (r *anschreibenRepository) GetByApplication(ctx context.Context, userID, applicationID uint) ([]models.Anschreiben, error) {
	var letters []models.Anschreiben
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND application_id = ?", userID, applicationID).
		Order("created_at DESC").
		Find(&letters).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return letters, nil
}

func (r *anschreibenRepository) List(ctx context.Context, userID uint, filter AnschreibenFilter) ([]models.Anschreiben, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.IsTemplate != nil {
		query = query.Where("is_template = ?", *filter.IsTemplate)
	}

	var letters []models.Anschreiben
	if err := query.Order("updated_at DESC").Find(&letters).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return letters, nil
}

func (r *anschreibenRepository) Update(ctx context.Context, a *models.Anschreiben) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *anschreibenRepository) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Anschreiben{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Anschreiben")
	}
	return nil
}

func (r *anschreibenRepository) Statistics(ctx context.Context, userID uint) (*models.AnschreibenStatistics, error) {
	stats := &models.AnschreibenStatistics{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Anschreiben{}).
		Where("user_id = ?", userID).
		Count(&stats.Total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.Anschreiben{}).
		Where("user_id = ? AND is_template = ?", userID, true).
		Count(&stats.Templates).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.Anschreiben{}).
		Where("user_id = ? AND application_id IS NOT NULL", userID).
		Count(&stats.Linked).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	stats.NotLinked = stats.Total - stats.Linked
	return stats, nil
}
