package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rglregistrations/internal/domain"
)

const invitationInviteeKey = "invitations_invitee_id_key"

const invitationColumns = `id, token, invitee_id, invitable_type, invitable_id, attending, created_at, updated_at`

type invitationRepository struct {
	DB  *sql.DB
	obs DBObserver
}

// NewInvitationRepository returns a domain.InvitationRepository implemented with Postgres.
func NewInvitationRepository(db *sql.DB, obs DBObserver) domain.InvitationRepository {
	return &invitationRepository{DB: db, obs: obs}
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var attending sql.NullBool
	err := row.Scan(&inv.ID, &inv.Token, &inv.InviteeID, &inv.InvitableType, &inv.InvitableID, &attending, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	inv.Attending = ptrFromNullBool(attending)
	return inv, nil
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (token, invitee_id, invitable_type, invitable_id, attending, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := observe(r.obs, "invitations.create", func() error {
		return r.DB.QueryRowContext(ctx, query,
			inv.Token, inv.InviteeID, inv.InvitableType, inv.InvitableID, inv.Attending, inv.CreatedAt, inv.UpdatedAt,
		).Scan(&inv.ID)
	})
	if isUniqueViolation(err, invitationInviteeKey) {
		return domain.ErrAlreadyInvited
	}
	return err
}

func (r *invitationRepository) getOne(ctx context.Context, op, where string, arg any) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE ` + where + ` = $1`
	var inv *domain.Invitation
	err := observe(r.obs, op, func() error {
		var err error
		inv, err = scanInvitation(r.DB.QueryRowContext(ctx, query, arg))
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	return r.getOne(ctx, "invitations.get", "id", id)
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	return r.getOne(ctx, "invitations.get_by_token", "token", token)
}

func (r *invitationRepository) GetByInviteeID(ctx context.Context, inviteeID string) (*domain.Invitation, error) {
	return r.getOne(ctx, "invitations.get_by_invitee", "invitee_id", inviteeID)
}

func (r *invitationRepository) UpdateAttending(ctx context.Context, id string, attending bool, updatedAt time.Time) error {
	query := `UPDATE invitations SET attending = $1, updated_at = $2 WHERE id = $3`
	return observe(r.obs, "invitations.update_attending", func() error {
		return execOne(ctx, r.DB, query, attending, updatedAt, id)
	})
}
