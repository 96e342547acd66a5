package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rglregistrations/internal/domain"
)

const registrationEmailEventKey = "registrations_email_event_key"

const registrationColumns = `id, event_id, member_id, first_name, last_name, email, gender, phone_number,
		programming_experience, reason_for_applying, how_did_you_hear_about_us, uk_resident, os, os_version,
		terms_of_service, address, spoken_languages, preferred_language, twitter, dietary_restrictions,
		selection_state, attending, attended, attendance_note, created_at, updated_at`

type registrationRepository struct {
	DB  *sql.DB
	obs DBObserver
}

// NewRegistrationRepository returns a domain.RegistrationRepository implemented with Postgres.
// obs may be nil.
func NewRegistrationRepository(db *sql.DB, obs DBObserver) domain.RegistrationRepository {
	return &registrationRepository{DB: db, obs: obs}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var eventID, memberID sql.NullString
	var ukResident, terms, attended sql.NullBool
	var state string
	err := row.Scan(
		&reg.ID, &eventID, &memberID, &reg.FirstName, &reg.LastName, &reg.Email, &reg.Gender, &reg.PhoneNumber,
		&reg.ProgrammingExperience, &reg.ReasonForApplying, &reg.HowDidYouHearAboutUs, &ukResident, &reg.OS, &reg.OSVersion,
		&terms, &reg.Address, &reg.SpokenLanguages, &reg.PreferredLanguage, &reg.Twitter, &reg.DietaryRestrictions,
		&state, &reg.Attending, &attended, &reg.Attendance.Note, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	reg.EventID = eventID.String
	reg.MemberID = ptrFromNullString(memberID)
	reg.UKResident = ptrFromNullBool(ukResident)
	reg.TermsOfService = ptrFromNullBool(terms)
	reg.Attendance.Attended = ptrFromNullBool(attended)
	reg.SelectionState = domain.SelectionState(state)
	return reg, nil
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, member_id, first_name, last_name, email, gender, phone_number,
			programming_experience, reason_for_applying, how_did_you_hear_about_us, uk_resident, os, os_version,
			terms_of_service, address, spoken_languages, preferred_language, twitter, dietary_restrictions,
			selection_state, attending, attended, attendance_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING id
	`
	err := observe(r.obs, "registrations.create", func() error {
		return r.DB.QueryRowContext(ctx, query,
			nullString(reg.EventID), reg.MemberID, reg.FirstName, reg.LastName, reg.Email, reg.Gender, reg.PhoneNumber,
			reg.ProgrammingExperience, reg.ReasonForApplying, reg.HowDidYouHearAboutUs, reg.UKResident, reg.OS, reg.OSVersion,
			reg.TermsOfService, reg.Address, reg.SpokenLanguages, reg.PreferredLanguage, reg.Twitter, reg.DietaryRestrictions,
			string(reg.SelectionState), reg.Attending, reg.Attendance.Attended, reg.Attendance.Note, reg.CreatedAt, reg.UpdatedAt,
		).Scan(&reg.ID)
	})
	if isUniqueViolation(err, registrationEmailEventKey) {
		return domain.ErrDuplicateRegistration
	}
	return err
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	query := `
		UPDATE registrations
		SET event_id = $1, member_id = $2, first_name = $3, last_name = $4, email = $5, gender = $6, phone_number = $7,
			programming_experience = $8, reason_for_applying = $9, how_did_you_hear_about_us = $10, uk_resident = $11,
			os = $12, os_version = $13, terms_of_service = $14, address = $15, spoken_languages = $16,
			preferred_language = $17, twitter = $18, dietary_restrictions = $19, updated_at = $20
		WHERE id = $21
	`
	err := observe(r.obs, "registrations.update", func() error {
		return execOne(ctx, r.DB, query,
			nullString(reg.EventID), reg.MemberID, reg.FirstName, reg.LastName, reg.Email, reg.Gender, reg.PhoneNumber,
			reg.ProgrammingExperience, reg.ReasonForApplying, reg.HowDidYouHearAboutUs, reg.UKResident,
			reg.OS, reg.OSVersion, reg.TermsOfService, reg.Address, reg.SpokenLanguages,
			reg.PreferredLanguage, reg.Twitter, reg.DietaryRestrictions, reg.UpdatedAt,
			reg.ID,
		)
	})
	if isUniqueViolation(err, registrationEmailEventKey) {
		return domain.ErrDuplicateRegistration
	}
	return err
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	var reg *domain.Registration
	err := observe(r.obs, "registrations.get", func() error {
		var err error
		reg, err = scanRegistration(r.DB.QueryRowContext(ctx, query, id))
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ExistsByEmailAndEvent(ctx context.Context, email, eventID, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM registrations
			WHERE LOWER(email) = LOWER($1)
			  AND event_id IS NOT DISTINCT FROM $2::uuid
			  AND ($3 = '' OR id::text <> $3)
		)
	`
	var exists bool
	err := observe(r.obs, "registrations.exists_by_email_event", func() error {
		return r.DB.QueryRowContext(ctx, query, email, nullString(eventID), excludeID).Scan(&exists)
	})
	return exists, err
}

// registrationFilter builds the WHERE clause shared by the list and count queries.
func registrationFilter(q domain.RegistrationQuery) (string, []any) {
	var conds []string
	var args []any
	if q.EventID != "" {
		args = append(args, q.EventID)
		conds = append(conds, fmt.Sprintf("event_id = $%d", len(args)))
	}
	switch q.Scope {
	case domain.ScopeAccepted:
		args = append(args, string(domain.SelectionAccepted))
		conds = append(conds, fmt.Sprintf("selection_state = $%d AND attending = TRUE", len(args)))
	case domain.ScopeMembers:
		conds = append(conds, "member_id IS NOT NULL")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *registrationRepository) List(ctx context.Context, q domain.RegistrationQuery) ([]*domain.Registration, int, error) {
	where, args := registrationFilter(q)

	var total int
	countQuery := `SELECT COUNT(*) FROM registrations` + where
	if err := observe(r.obs, "registrations.count", func() error {
		return r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	}); err != nil {
		return nil, 0, err
	}

	order := "DESC"
	if q.Order == domain.OrderOldestFirst {
		order = "ASC"
	}
	query := `SELECT ` + registrationColumns + ` FROM registrations` + where +
		` ORDER BY created_at ` + order + `, id ` + order
	if q.Pagination.PageSize > 0 {
		args = append(args, q.Pagination.PageSize, q.Pagination.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	regs := make([]*domain.Registration, 0)
	err := observe(r.obs, "registrations.list", func() error {
		rows, err := r.DB.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			reg, err := scanRegistration(rows)
			if err != nil {
				return err
			}
			regs = append(regs, reg)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

func (r *registrationRepository) UpdateSelectionState(ctx context.Context, id string, state domain.SelectionState, updatedAt time.Time) error {
	query := `UPDATE registrations SET selection_state = $1, updated_at = $2 WHERE id = $3`
	return observe(r.obs, "registrations.update_selection_state", func() error {
		return execOne(ctx, r.DB, query, string(state), updatedAt, id)
	})
}

func (r *registrationRepository) UpdateAttending(ctx context.Context, id string, attending bool, updatedAt time.Time) error {
	query := `UPDATE registrations SET attending = $1, updated_at = $2 WHERE id = $3`
	return observe(r.obs, "registrations.update_attending", func() error {
		return execOne(ctx, r.DB, query, attending, updatedAt, id)
	})
}

func (r *registrationRepository) UpdateAttendance(ctx context.Context, id string, attendance domain.Attendance, updatedAt time.Time) error {
	query := `UPDATE registrations SET attended = $1, attendance_note = $2, updated_at = $3 WHERE id = $4`
	return observe(r.obs, "registrations.update_attendance", func() error {
		return execOne(ctx, r.DB, query, attendance.Attended, attendance.Note, updatedAt, id)
	})
}
