// Package identity provides admin authentication for the write API.
// A single administrator account is provisioned through configuration;
// successful logins are exchanged for a short-lived bearer token.
package identity

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Identity errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Authenticator issues and validates bearer tokens.
type Authenticator interface {
	GenerateToken(ctx context.Context, subject string) (token string, err error)
	ValidateToken(ctx context.Context, token string) (subject string, err error)
}

// AdminCredentials holds the configured administrator account. PasswordHash
// is a bcrypt hash; the clear-text password never appears in config.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// Service implements admin authentication.
type Service struct {
	admin AdminCredentials
	auth  Authenticator
}

// NewService creates a new identity service.
func NewService(admin AdminCredentials, auth Authenticator) *Service {
	return &Service{admin: admin, auth: auth}
}

// Login checks the credentials against the configured admin account and
// returns a bearer token on success.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.admin.Username {
		// Burn comparable time so username probing cannot be timed.
		_ = bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(ctx, username)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken checks a bearer token and returns its subject.
func (s *Service) ValidateToken(ctx context.Context, token string) (string, error) {
	subject, err := s.auth.ValidateToken(ctx, token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// HashPassword produces a bcrypt hash suitable for the admin credential
// configuration. Used by fixtures and provisioning tooling.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
