// Package repository implements the data access layer for the application.
//
// Every entity except User is owner-scoped: reads, updates and deletes all
// filter by the caller's user ID, so a foreign row is indistinguishable from
// a missing one.
package repository

import (
	"context"
	"errors"
	"strings"

	"trackwerk/internal/models"

	"gorm.io/gorm"
)

// firstOwned loads one row of T by id, scoped to the owning user. A miss
// returns the resource-specific NotFound error.
func firstOwned[T any](ctx context.Context, db *gorm.DB, userID, id uint, resource string) (*T, error) {
	var entity T
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(resource)
		}
		return nil, models.NewInternalError(err)
	}
	return &entity, nil
}

// ownedExists reports whether the user owns a row of T with the given id.
// Used to re-validate cross-references before they are stored.
func ownedExists[T any](ctx context.Context, db *gorm.DB, userID, id uint) (bool, error) {
	var count int64
	var entity T
	err := db.WithContext(ctx).
		Model(&entity).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// isUniqueConstraintError detects unique violations across Postgres and SQLite.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// likePattern builds a case-insensitive substring match argument.
func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
