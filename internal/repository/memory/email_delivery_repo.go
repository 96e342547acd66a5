package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"rglregistrations/internal/domain"
)

type EmailDeliveryRepo struct {
	mu    sync.RWMutex
	items []domain.EmailDelivery
}

func NewEmailDeliveryRepo() *EmailDeliveryRepo {
	return &EmailDeliveryRepo{}
}

func (r *EmailDeliveryRepo) Create(_ context.Context, d *domain.EmailDelivery) error {
	d.ID = uuid.NewString()
	r.mu.Lock()
	r.items = append(r.items, *d)
	r.mu.Unlock()
	return nil
}

// ListByRegistrationID returns newest first.
func (r *EmailDeliveryRepo) ListByRegistrationID(_ context.Context, registrationID string) ([]*domain.EmailDelivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.EmailDelivery, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].RegistrationID == registrationID {
			d := r.items[i]
			out = append(out, &d)
		}
	}
	return out, nil
}
