package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"rglregistrations/internal/domain"
)

type EventRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Event
}

func NewEventRepo() *EventRepo {
	return &EventRepo{
		items: make(map[string]domain.Event),
	}
}

func (r *EventRepo) Create(_ context.Context, e *domain.Event) error {
	e.ID = uuid.NewString()
	r.mu.Lock()
	r.items[e.ID] = *e
	r.mu.Unlock()
	return nil
}

func (r *EventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *EventRepo) List(_ context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	r.mu.RLock()
	all := make([]domain.Event, 0, len(r.items))
	for _, e := range r.items {
		all = append(all, e)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].StartsOn.Equal(all[j].StartsOn) {
			return all[i].StartsOn.After(all[j].StartsOn)
		}
		return all[i].ID > all[j].ID
	})
	start, end := params.Window(len(all))
	out := make([]*domain.Event, 0, end-start)
	for i := start; i < end; i++ {
		e := all[i]
		out = append(out, &e)
	}
	return out, len(all), nil
}
