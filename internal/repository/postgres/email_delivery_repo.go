package postgres

import (
	"context"
	"database/sql"

	"rglregistrations/internal/domain"
)

type emailDeliveryRepository struct {
	DB  *sql.DB
	obs DBObserver
}

// NewEmailDeliveryRepository returns a domain.EmailDeliveryRepository implemented with Postgres.
func NewEmailDeliveryRepository(db *sql.DB, obs DBObserver) domain.EmailDeliveryRepository {
	return &emailDeliveryRepository{DB: db, obs: obs}
}

func (r *emailDeliveryRepository) Create(ctx context.Context, d *domain.EmailDelivery) error {
	query := `
		INSERT INTO email_deliveries (kind, registration_id, invitation_id, recipient, subject, status, provider_message_id, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return observe(r.obs, "email_deliveries.create", func() error {
		return r.DB.QueryRowContext(ctx, query,
			string(d.Kind), nullString(d.RegistrationID), nullString(d.InvitationID), d.Recipient, d.Subject, d.Status,
			nullString(d.ProviderMessageID), nullString(d.Error), d.CreatedAt,
		).Scan(&d.ID)
	})
}

func (r *emailDeliveryRepository) ListByRegistrationID(ctx context.Context, registrationID string) ([]*domain.EmailDelivery, error) {
	query := `
		SELECT id, kind, registration_id, invitation_id, recipient, subject, status, provider_message_id, error, created_at
		FROM email_deliveries
		WHERE registration_id = $1
		ORDER BY created_at DESC
	`
	deliveries := make([]*domain.EmailDelivery, 0)
	err := observe(r.obs, "email_deliveries.list", func() error {
		rows, err := r.DB.QueryContext(ctx, query, registrationID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			d := &domain.EmailDelivery{}
			var kind string
			var regID, invID, msgID, errMsg sql.NullString
			if err := rows.Scan(&d.ID, &kind, &regID, &invID, &d.Recipient, &d.Subject, &d.Status, &msgID, &errMsg, &d.CreatedAt); err != nil {
				return err
			}
			d.Kind = domain.EmailKind(kind)
			d.RegistrationID = regID.String
			d.InvitationID = invID.String
			d.ProviderMessageID = msgID.String
			d.Error = errMsg.String
			deliveries = append(deliveries, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}
