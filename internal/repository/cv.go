package repository

import (
	"context"
	"errors"

	"trackwerk/internal/models"

	"gorm.io/gorm"
)

// CVRepository defines persistence operations for CVs, including the
// single-default invariant.
type CVRepository interface {
	Create(ctx context.Context, cv *models.CV) error
	GetByID(ctx context.Context, userID, id uint) (*models.CV, error)
	GetDefault(ctx context.Context, userID uint) (*models.CV, error)
	Exists(ctx context.Context, userID, id uint) (bool, error)
	List(ctx context.Context, userID uint) ([]models.CV, error)
	Update(ctx context.Context, cv *models.CV) error
	SetDefault(ctx context.Context, userID, id uint) (*models.CV, error)
	Delete(ctx context.Context, userID, id uint) error
	Statistics(ctx context.Context, userID uint) (*models.CVStatistics, error)
}

type cvRepository struct {
	db *gorm.DB
}

// NewCVRepository returns a new CVRepository implementation.
func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

// unsetDefaults clears IsDefault on every CV of the user except keep (0 to
// clear all). Must run inside the caller's transaction.
func unsetDefaults(tx *gorm.DB, userID, keep uint) error {
	query := tx.Model(&models.CV{}).Where("user_id = ?", userID)
	if keep != 0 {
		query = query.Where("id <> ?", keep)
	}
	return query.Update("is_default", false).Error
}

func (r *cvRepository) Create(ctx context.Context, cv *models.CV) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cv.IsDefault {
			if err := unsetDefaults(tx, cv.UserID, 0); err != nil {
				return err
			}
		}
		return tx.Create(cv).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *cvRepository) GetByID(ctx context.Context, userID, id uint) (*models.CV, error) {
	return firstOwned[models.CV](ctx, r.db, userID, id, "CV")
}

// GetDefault returns (nil, nil) when the user has no default CV.
func (r *cvRepository) GetDefault(ctx context.Context, userID uint) (*models.CV, error) {
	var cv models.CV
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&cv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &cv, nil
}

func (r *cvRepository) Exists(ctx context.Context, userID, id uint) (bool, error) {
	return ownedExists[models.CV](ctx, r.db, userID, id)
}

func (r *cvRepository) List(ctx context.Context, userID uint) ([]models.CV, error) {
	var cvs []models.CV
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, updated_at DESC").
		Find(&cvs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return cvs, nil
}

func (r *cvRepository) Update(ctx context.Context, cv *models.CV) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cv.IsDefault {
			if err := unsetDefaults(tx, cv.UserID, cv.ID); err != nil {
				return err
			}
		}
		return tx.Save(cv).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SetDefault promotes the CV to the user's single default in one transaction.
func (r *cvRepository) SetDefault(ctx context.Context, userID, id uint) (*models.CV, error) {
	var cv models.CV
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&cv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("CV")
			}
			return err
		}
		if err := unsetDefaults(tx, userID, id); err != nil {
			return err
		}
		cv.IsDefault = true
		return tx.Save(&cv).Error
	})
	if err != nil {
		if models.IsNotFound(err, "CV") {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	return &cv, nil
}

// Delete removes the CV; applications that referenced it keep existing with
// the reference cleared.
func (r *cvRepository) Delete(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CV{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("CV")
		}
		return tx.Model(&models.Application{}).
			Where("cv_id = ?", id).
			Update("cv_id", nil).Error
	})
	if err != nil {
		if models.IsNotFound(err, "CV") {
			return err
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *cvRepository) Statistics(ctx context.Context, userID uint) (*models.CVStatistics, error) {
	stats := &models.CVStatistics{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.CV{}).
		Where("user_id = ?", userID).
		Count(&stats.Total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	defaultCV, err := r.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	if defaultCV != nil {
		stats.DefaultCV = &models.CVSummary{ID: defaultCV.ID, Title: defaultCV.Title}
	}

	if err := db.Model(&models.CV{}).
		Where("user_id = ?", userID).
		Where("id IN (?)", db.Model(&models.Application{}).
			Select("cv_id").
			Where("user_id = ? AND cv_id IS NOT NULL", userID)).
		Count(&stats.WithApplications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	stats.WithoutApplications = stats.Total - stats.WithApplications
	return stats, nil
}
