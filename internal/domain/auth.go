package domain

import (
	"context"
	"time"
)

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(subject, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AdminCredentials is the single organiser account allowed to use the admin API.
type AdminCredentials struct {
	Email        string
	PasswordSalt string
	PasswordHash string
}

// AuthService authenticates organisers.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}

// RoleAdmin is the role carried by organiser tokens.
const RoleAdmin = "admin"
