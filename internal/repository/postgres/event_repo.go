package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rglregistrations/internal/domain"
)

const eventColumns = `id, title, description, starts_on, ends_on, dates_label, created_at, updated_at`

type eventRepository struct {
	DB  *sql.DB
	obs DBObserver
}

func NewEventRepository(db *sql.DB, obs DBObserver) domain.EventRepository {
	return &eventRepository{
		DB:  db,
		obs: obs,
	}
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartsOn, &e.EndsOn, &e.DatesLabel, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, starts_on, ends_on, dates_label, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return observe(r.obs, "events.create", func() error {
		return r.DB.QueryRowContext(ctx, query, e.Title, e.Description, e.StartsOn, e.EndsOn, e.DatesLabel, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	})
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	var e *domain.Event
	err := observe(r.obs, "events.get", func() error {
		var err error
		e, err = scanEvent(r.DB.QueryRowContext(ctx, query, id))
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := observe(r.obs, "events.count", func() error {
		return r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total)
	}); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events ORDER BY starts_on DESC, id DESC`
	var args []any
	if params.PageSize > 0 {
		args = append(args, params.PageSize, params.Offset())
		query += " LIMIT $1 OFFSET $2"
	}

	events := make([]*domain.Event, 0)
	err := observe(r.obs, "events.list", func() error {
		rows, err := r.DB.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			e, err := scanEvent(rows)
			if err != nil {
				return err
			}
			events = append(events, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
