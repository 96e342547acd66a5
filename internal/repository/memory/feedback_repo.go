package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"rglregistrations/internal/domain"
)

// FeedbackRepo keys feedback by invitation id.
type FeedbackRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Feedback
}

func NewFeedbackRepo() *FeedbackRepo {
	return &FeedbackRepo{items: make(map[string]domain.Feedback)}
}

func (r *FeedbackRepo) Create(_ context.Context, f *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[f.InvitationID]; ok {
		return domain.ErrFeedbackExists
	}
	f.ID = uuid.NewString()
	r.items[f.InvitationID] = *f
	return nil
}

func (r *FeedbackRepo) GetByInvitationID(_ context.Context, invitationID string) (*domain.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.items[invitationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}
