package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rglregistrations/internal/domain"
)

const feedbackInvitationKey = "feedbacks_invitation_id_key"

type feedbackRepository struct {
	DB  *sql.DB
	obs DBObserver
}

func NewFeedbackRepository(db *sql.DB, obs DBObserver) domain.FeedbackRepository {
	return &feedbackRepository{DB: db, obs: obs}
}

func (r *feedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	query := `
		INSERT INTO feedbacks (invitation_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := observe(r.obs, "feedbacks.create", func() error {
		return r.DB.QueryRowContext(ctx, query, f.InvitationID, f.Rating, f.Comment, f.CreatedAt).Scan(&f.ID)
	})
	if isUniqueViolation(err, feedbackInvitationKey) {
		return domain.ErrFeedbackExists
	}
	return err
}

func (r *feedbackRepository) GetByInvitationID(ctx context.Context, invitationID string) (*domain.Feedback, error) {
	query := `SELECT id, invitation_id, rating, comment, created_at FROM feedbacks WHERE invitation_id = $1`
	f := &domain.Feedback{}
	err := observe(r.obs, "feedbacks.get_by_invitation", func() error {
		return r.DB.QueryRowContext(ctx, query, invitationID).Scan(&f.ID, &f.InvitationID, &f.Rating, &f.Comment, &f.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}
