package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rglregistrations/internal/domain"
)

type authService struct {
	admin     domain.AdminCredentials
	hasher    domain.PasswordHasher
	issuer    domain.TokenIssuer
	jwtExpiry time.Duration
}

// NewAuthService creates an AuthService for the single organiser account.
func NewAuthService(admin domain.AdminCredentials, hasher domain.PasswordHasher, issuer domain.TokenIssuer, jwtExpiry time.Duration) domain.AuthService {
	return &authService{
		admin:     admin,
		hasher:    hasher,
		issuer:    issuer,
		jwtExpiry: jwtExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if s.admin.Email == "" || s.admin.PasswordHash == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	if email != strings.ToLower(s.admin.Email) {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.admin.PasswordHash, s.admin.PasswordSalt, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(email, email, []string{domain.RoleAdmin}, s.jwtExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
