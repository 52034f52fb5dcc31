package service

import "trackwerk/internal/models"

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// normalizePagination clamps page/limit to sane bounds (1-indexed pages).
func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// buildPagination assembles the page descriptor for a list response.
func buildPagination(page, limit int, total int64) models.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
