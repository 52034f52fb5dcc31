package service

import (
	"context"
	"testing"

	"trackwerk/internal/auth"
	"trackwerk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn     func(context.Context, *models.User) error
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	updateFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		getByIDFn:    func(_ context.Context, _ uint) (*models.User, error) { return nil, models.NewNotFoundError("User") },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
	}
}

func testTokens() *auth.Manager {
	return auth.NewManager("test-secret-key", 7)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns user and token", func(t *testing.T) {
		svc := NewAuthService(noopUserRepo(), testTokens())

		user, token, err := svc.Register(ctx, RegisterInput{
			Email:     "  alice@example.com  ",
			Password:  "password123",
			FirstName: "Alice",
			LastName:  "Anders",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEmpty(t, token)
		assert.NotEqual(t, "password123", user.PasswordHash)
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		svc := NewAuthService(noopUserRepo(), testTokens())

		cases := []RegisterInput{
			{Email: "not-an-email", Password: "password123", FirstName: "A", LastName: "B"},
			{Email: "a@b.com", Password: "short", FirstName: "A", LastName: "B"},
			{Email: "a@b.com", Password: "password123", FirstName: "", LastName: "B"},
			{Email: "a@b.com", Password: "password123", FirstName: "A", LastName: "  "},
		}
		for _, in := range cases {
			_, _, err := svc.Register(ctx, in)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr, "%+v", in)
			assert.Equal(t, models.CodeValidation, appErr.Code)
		}
	})

	t.Run("duplicate email surfaces conflict", func(t *testing.T) {
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			return models.NewConflictError("An account with this email already exists")
		}
		svc := NewAuthService(repo, testTokens())

		_, _, err := svc.Register(ctx, RegisterInput{
			Email: "dup@example.com", Password: "password123", FirstName: "A", LastName: "B",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	stored := &models.User{ID: 1, Email: "alice@example.com", PasswordHash: hash}

	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == stored.Email {
			return stored, nil
		}
		return nil, nil
	}
	svc := NewAuthService(repo, testTokens())

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, _, errWrongPass := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong-pass"})
		_, _, errUnknown := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "password123"})

		require.Error(t, errWrongPass)
		require.Error(t, errUnknown)
		assert.Equal(t, errWrongPass.Error(), errUnknown.Error())

		var appErr *models.AppError
		require.ErrorAs(t, errWrongPass, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})

	t.Run("empty fields rejected", func(t *testing.T) {
		_, _, err := svc.Login(ctx, LoginInput{})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})
}
