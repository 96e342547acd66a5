package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rglregistrations/internal/domain"
)

const memberEmailKey = "members_email_key"

type memberRepository struct {
	DB  *sql.DB
	obs DBObserver
}

func NewMemberRepository(db *sql.DB, obs DBObserver) domain.MemberRepository {
	return &memberRepository{DB: db, obs: obs}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `
		INSERT INTO members (first_name, last_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := observe(r.obs, "members.create", func() error {
		return r.DB.QueryRowContext(ctx, query, m.FirstName, m.LastName, m.Email, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
	})
	if isUniqueViolation(err, memberEmailKey) {
		ve := &domain.ValidationError{}
		ve.Add("email", domain.CodeTaken, "has already been taken")
		return ve
	}
	return err
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT id, first_name, last_name, email, created_at, updated_at FROM members WHERE id = $1`
	m := &domain.Member{}
	err := observe(r.obs, "members.get", func() error {
		return r.DB.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.CreatedAt, &m.UpdatedAt)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}
