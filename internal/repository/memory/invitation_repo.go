package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"rglregistrations/internal/domain"
)

type InvitationRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Invitation
}

func NewInvitationRepo() *InvitationRepo {
	return &InvitationRepo{items: make(map[string]domain.Invitation)}
}

func (r *InvitationRepo) Create(_ context.Context, inv *domain.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.InviteeID == inv.InviteeID {
			return domain.ErrAlreadyInvited
		}
	}
	inv.ID = uuid.NewString()
	stored := *inv
	r.items[inv.ID] = stored
	return nil
}

func (r *InvitationRepo) find(match func(inv domain.Invitation) bool) (*domain.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inv := range r.items {
		if match(inv) {
			return &inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *InvitationRepo) GetByID(_ context.Context, id string) (*domain.Invitation, error) {
	return r.find(func(inv domain.Invitation) bool { return inv.ID == id })
}

func (r *InvitationRepo) GetByToken(_ context.Context, token string) (*domain.Invitation, error) {
	return r.find(func(inv domain.Invitation) bool { return inv.Token == token })
}

func (r *InvitationRepo) GetByInviteeID(_ context.Context, inviteeID string) (*domain.Invitation, error) {
	return r.find(func(inv domain.Invitation) bool { return inv.InviteeID == inviteeID })
}

func (r *InvitationRepo) UpdateAttending(_ context.Context, id string, attending bool, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Attending = &attending
	inv.UpdatedAt = updatedAt
	r.items[id] = inv
	return nil
}
