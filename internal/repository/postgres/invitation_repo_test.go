package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"rglregistrations/internal/domain"
)

func TestInvitationRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO invitations \(token, invitee_id, invitable_type, invitable_id, attending, created_at, updated_at\)`).
					WithArgs("tok-1", "reg-1", "Event", "ev-1", nil, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inv-1"))
			},
		},
		{
			name: "second invitation for the invitee",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO invitations`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "invitations_invitee_id_key"})
			},
			wantErr: domain.ErrAlreadyInvited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			inv := domain.NewEventInvitation("tok-1", "reg-1", "ev-1", now)
			err = NewInvitationRepository(db, nil).Create(ctx, inv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, "inv-1", inv.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationRepository_GetByToken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cols := []string{"id", "token", "invitee_id", "invitable_type", "invitable_id", "attending", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM invitations WHERE token = \$1`).
			WithArgs("tok-1").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("inv-1", "tok-1", "reg-1", "Event", "ev-1", true, now, now))

		inv, err := NewInvitationRepository(db, nil).GetByToken(ctx, "tok-1")
		require.NoError(t, err)
		require.Equal(t, "reg-1", inv.InviteeID)
		require.NotNil(t, inv.Attending)
		require.True(t, *inv.Attending)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM invitations WHERE invitee_id = \$1`).
			WithArgs("reg-9").
			WillReturnError(sql.ErrNoRows)

		_, err = NewInvitationRepository(db, nil).GetByInviteeID(ctx, "reg-9")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInvitationRepository_UpdateAttending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE invitations SET attending = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs(true, now, "inv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewInvitationRepository(db, nil).UpdateAttending(context.Background(), "inv-1", true, now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO feedbacks \(invitation_id, rating, comment, created_at\)`).
					WithArgs("inv-1", 5, "Loved it", now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("fb-1"))
			},
		},
		{
			name: "already submitted",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO feedbacks`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "feedbacks_invitation_id_key"})
			},
			wantErr: domain.ErrFeedbackExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			fb := &domain.Feedback{InvitationID: "inv-1", Rating: 5, Comment: "Loved it", CreatedAt: now}
			err = NewFeedbackRepository(db, nil).Create(ctx, fb)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, "fb-1", fb.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMemberRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO members`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "members_email_key"})

	err = NewMemberRepository(db, nil).Create(context.Background(), &domain.Member{FirstName: "Ada", LastName: "L", Email: "ada@example.com"})
	require.ErrorIs(t, err, domain.ErrValidation)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.True(t, ve.Has("email", domain.CodeTaken))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailDeliveryRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO email_deliveries`).
		WithArgs("invite", "reg-1", "inv-1", "ada@example.com", "Subject", "failed", nil, "smtp down", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("del-1"))
	mock.ExpectQuery(`FROM email_deliveries\s+WHERE registration_id = \$1`).
		WithArgs("reg-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "registration_id", "invitation_id", "recipient", "subject", "status", "provider_message_id", "error", "created_at"}).
			AddRow("del-1", "invite", "reg-1", "inv-1", "ada@example.com", "Subject", "failed", nil, "smtp down", now))

	repo := NewEmailDeliveryRepository(db, nil)
	d := &domain.EmailDelivery{
		Kind:           domain.EmailInvite,
		RegistrationID: "reg-1",
		InvitationID:   "inv-1",
		Recipient:      "ada@example.com",
		Subject:        "Subject",
		Status:         domain.DeliveryFailed,
		Error:          "smtp down",
		CreatedAt:      now,
	}
	require.NoError(t, repo.Create(context.Background(), d))
	require.Equal(t, "del-1", d.ID)

	list, err := repo.ListByRegistrationID(context.Background(), "reg-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.EmailInvite, list[0].Kind)
	require.Empty(t, list[0].ProviderMessageID)
	require.NoError(t, mock.ExpectationsWereMet())
}
