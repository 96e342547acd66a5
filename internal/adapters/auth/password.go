package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"rglregistrations/internal/domain"
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher that uses bcrypt with salt+password
// pre-hashed with SHA256.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) GenerateSalt() (string, error) {
	saltBytes := make([]byte, 32)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(saltBytes), nil
}

// prehash returns hex(sha256(salt + password)).
func prehash(salt, password string) []byte {
	sum := sha256.Sum256([]byte(salt + password))
	return []byte(hex.EncodeToString(sum[:]))
}

func (h *bcryptHasher) Hash(salt, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(salt, password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Compare(hash, salt, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(salt, password))
}

// NewCredentials generates a fresh salt and hashes password with it, for provisioning the
// organiser account.
func NewCredentials(h domain.PasswordHasher, email, password string) (domain.AdminCredentials, error) {
	salt, err := h.GenerateSalt()
	if err != nil {
		return domain.AdminCredentials{}, err
	}
	hash, err := h.Hash(salt, password)
	if err != nil {
		return domain.AdminCredentials{}, err
	}
	return domain.AdminCredentials{Email: email, PasswordSalt: salt, PasswordHash: hash}, nil
}
