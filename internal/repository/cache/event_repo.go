// Package cache decorates repositories with an in-process read cache.
package cache

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"rglregistrations/internal/domain"
)

const DefaultEventTTL = 5 * time.Minute

// EventRepository caches GetByID lookups of the wrapped repository. Events are read on every
// registration and invitation, and rarely change once created.
type EventRepository struct {
	next   domain.EventRepository
	cache  *gocache.Cache
	logger *slog.Logger
}

// NewEventRepository wraps next. A non-positive ttl uses DefaultEventTTL.
func NewEventRepository(next domain.EventRepository, ttl time.Duration, logger *slog.Logger) *EventRepository {
	if ttl <= 0 {
		ttl = DefaultEventTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventRepository{
		next:   next,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	if err := r.next.Create(ctx, e); err != nil {
		return err
	}
	r.cache.SetDefault(e.ID, *e)
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if v, found := r.cache.Get(id); found {
		if e, ok := v.(domain.Event); ok {
			r.logger.Debug("event cache hit", "event_id", id)
			return &e, nil
		}
		r.logger.Error("wrong type in event cache", "event_id", id)
		r.cache.Delete(id)
	}
	e, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(id, *e)
	return e, nil
}

// List is not cached.
func (r *EventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	return r.next.List(ctx, params)
}

// Flush drops every cached event.
func (r *EventRepository) Flush() {
	r.cache.Flush()
}
