// Package memory holds map-backed repositories used by tests and by `rgl serve --memory`.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"rglregistrations/internal/domain"
)

type RegistrationRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Registration
}

func NewRegistrationRepo() *RegistrationRepo {
	return &RegistrationRepo{
		items: make(map[string]domain.Registration),
	}
}

// taken reports whether another registration uses the (email, event) pair. Callers hold the lock.
func (r *RegistrationRepo) taken(email, eventID, excludeID string) bool {
	for id, reg := range r.items {
		if id != excludeID && reg.EventID == eventID && strings.EqualFold(reg.Email, email) {
			return true
		}
	}
	return false
}

func (r *RegistrationRepo) Create(_ context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(reg.Email, reg.EventID, "") {
		return domain.ErrDuplicateRegistration
	}
	reg.ID = uuid.NewString()
	stored := *reg
	stored.EmailConfirmation = ""
	r.items[reg.ID] = stored
	return nil
}

func (r *RegistrationRepo) Update(_ context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[reg.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.taken(reg.Email, reg.EventID, reg.ID) {
		return domain.ErrDuplicateRegistration
	}
	updated := *reg
	updated.EmailConfirmation = ""
	// workflow columns are owned by their dedicated updates
	updated.SelectionState = cur.SelectionState
	updated.Attending = cur.Attending
	updated.Attendance = cur.Attendance
	updated.CreatedAt = cur.CreatedAt
	r.items[reg.ID] = updated
	return nil
}

func (r *RegistrationRepo) GetByID(_ context.Context, id string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &reg, nil
}

func (r *RegistrationRepo) ExistsByEmailAndEvent(_ context.Context, email, eventID, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.taken(email, eventID, excludeID), nil
}

func (r *RegistrationRepo) List(_ context.Context, q domain.RegistrationQuery) ([]*domain.Registration, int, error) {
	r.mu.RLock()
	matched := make([]domain.Registration, 0, len(r.items))
	for _, reg := range r.items {
		if q.EventID != "" && reg.EventID != q.EventID {
			continue
		}
		if !reg.InScope(q.Scope) {
			continue
		}
		matched = append(matched, reg)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if q.Order == domain.OrderOldestFirst {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if q.Order == domain.OrderOldestFirst {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})

	start, end := q.Pagination.Window(len(matched))
	out := make([]*domain.Registration, 0, end-start)
	for i := start; i < end; i++ {
		reg := matched[i]
		out = append(out, &reg)
	}
	return out, len(matched), nil
}

func (r *RegistrationRepo) update(id string, fn func(reg *domain.Registration)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&reg)
	r.items[id] = reg
	return nil
}

func (r *RegistrationRepo) UpdateSelectionState(_ context.Context, id string, state domain.SelectionState, updatedAt time.Time) error {
	return r.update(id, func(reg *domain.Registration) {
		reg.SelectionState = state
		reg.UpdatedAt = updatedAt
	})
}

func (r *RegistrationRepo) UpdateAttending(_ context.Context, id string, attending bool, updatedAt time.Time) error {
	return r.update(id, func(reg *domain.Registration) {
		reg.Attending = attending
		reg.UpdatedAt = updatedAt
	})
}

func (r *RegistrationRepo) UpdateAttendance(_ context.Context, id string, attendance domain.Attendance, updatedAt time.Time) error {
	return r.update(id, func(reg *domain.Registration) {
		reg.Attendance = attendance
		reg.UpdatedAt = updatedAt
	})
}
