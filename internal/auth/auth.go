// Package auth implements password hashing and JWT session tokens.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"trackwerk/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// bcryptCost matches the original deployment's work factor.
	bcryptCost = 10

	tokenIssuer   = "trackwerk-api"
	tokenAudience = "trackwerk-client"
)

// Principal identifies an authenticated caller.
type Principal struct {
	UserID uint
	Email  string
}

// Manager issues and verifies session tokens with a process-wide secret.
type Manager struct {
	secret []byte
	expiry time.Duration
}

// NewManager returns a Manager signing with secret; tokens expire after
// expiryDays days.
func NewManager(secret string, expiryDays int) *Manager {
	if expiryDays <= 0 {
		expiryDays = 7
	}
	return &Manager{
		secret: []byte(secret),
		expiry: time.Duration(expiryDays) * 24 * time.Hour,
	}
}

// HashPassword produces a salted bcrypt hash of the plaintext password.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IssueToken signs a session token carrying the user's identity.
func (m *Manager) IssueToken(userID uint, email string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10),
		"email": email,
		"iss":   tokenIssuer,
		"aud":   tokenAudience,
		"exp":   now.Add(m.expiry).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifyToken parses and validates a session token. Every failure mode
// (bad signature, malformed token, expiry) maps to the same unauthorized
// error.
func (m *Manager) VerifyToken(tokenString string) (Principal, error) {
	invalid := models.NewUnauthorizedError("Invalid or expired token")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return m.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Principal{}, invalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, invalid
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Principal{}, invalid
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return Principal{}, invalid
	}

	email, _ := claims["email"].(string)

	return Principal{UserID: uint(userID), Email: email}, nil
}

// generateJTI creates a unique token ID to make issued tokens distinguishable.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
