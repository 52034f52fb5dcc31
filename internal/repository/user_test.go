package repository

import (
	"context"
	"testing"

	"trackwerk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Create and GetByID", func(t *testing.T) {
		user := &models.User{
			Email:        "alice@example.com",
			PasswordHash: "hash",
			FirstName:    "Alice",
			LastName:     "Anders",
		}
		require.NoError(t, repo.Create(ctx, user))
		assert.NotZero(t, user.ID)

		fetched, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", fetched.Email)
	})

	t.Run("GetByID missing returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.True(t, models.IsNotFound(err, "User"))
	})

	t.Run("GetByEmail miss returns nil without error", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		first := &models.User{Email: "dup@example.com", PasswordHash: "h", FirstName: "A", LastName: "B"}
		require.NoError(t, repo.Create(ctx, first))

		second := &models.User{Email: "dup@example.com", PasswordHash: "h", FirstName: "C", LastName: "D"}
		err := repo.Create(ctx, second)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("Update persists changes", func(t *testing.T) {
		user := &models.User{Email: "update@example.com", PasswordHash: "h", FirstName: "Old", LastName: "Name"}
		require.NoError(t, repo.Create(ctx, user))

		user.FirstName = "New"
		require.NoError(t, repo.Update(ctx, user))

		fetched, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", fetched.FirstName)
	})
}
