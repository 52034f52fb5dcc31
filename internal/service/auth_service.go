// Package service implements the business rules for every resource.
package service

import (
	"context"
	"strings"

	"trackwerk/internal/auth"
	"trackwerk/internal/models"
	"trackwerk/internal/repository"
	"trackwerk/internal/validation"
)

// AuthService handles registration, login and identity lookups.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.Manager
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginInput is the payload for credential verification.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates an account and returns the user with a fresh session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, "", models.NewValidationError("First name and last name are required")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh session token.
// A missing account and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, "", err
	}
	if user == nil || !auth.CheckPassword(in.Password, user.PasswordHash) {
		return nil, "", models.NewUnauthorizedError("Invalid email or password")
	}

	token, err := s.tokens.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// Me returns the account of the authenticated caller.
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
