package domain

import (
	"context"
	"strings"
	"time"
)

// Member is a returning community member that registrations may be linked to.
// swagger:model Member
type Member struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the member's identity fields.
func (m *Member) Validate() error {
	ve := &ValidationError{}
	if strings.TrimSpace(m.FirstName) == "" {
		ve.Add("first_name", CodeBlank, msgBlank)
	}
	if strings.TrimSpace(m.LastName) == "" {
		ve.Add("last_name", CodeBlank, msgBlank)
	}
	if err := validate.Var(m.Email, "required,email"); err != nil {
		ve.Add("email", CodeInvalid, "is invalid")
	}
	return ve.OrNil()
}

// MemberRepository defines storage operations for members.
type MemberRepository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
}

// MemberService defines member operations.
type MemberService interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	Get(ctx context.Context, id string) (*Member, error)
}
