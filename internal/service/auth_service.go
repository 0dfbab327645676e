package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"puf-orgu/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	// MinPasswordLength applies to new passwords only; seeded credentials
	// predate the rule.
	MinPasswordLength = 8
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordTooShort   = errors.New("new password must be at least 8 characters")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims represents the JWT claims of an admin session token
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService gates the back office. Sessions are server-issued expiring
// tokens validated on every admin request, not a client-held flag.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	admins      repository.AdminRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(admins repository.AdminRepository, jwtSecret string, tokenExpiry time.Duration) AuthService {
	return &authService{
		admins:      admins,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// Login verifies the credentials and returns a signed session token
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if err == repository.ErrAdminNotFound {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(s.tokenExpiry)
	claims := &Claims{
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ChangePassword verifies the current password before storing a new hash
func (s *authService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.admins.UpdatePassword(ctx, username, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ValidateToken validates a session token and returns its claims
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
