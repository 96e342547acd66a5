package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"rglregistrations/internal/domain"
)

type MemberRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Member
}

func NewMemberRepo() *MemberRepo {
	return &MemberRepo{items: make(map[string]domain.Member)}
}

func (r *MemberRepo) Create(_ context.Context, m *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if strings.EqualFold(existing.Email, m.Email) {
			ve := &domain.ValidationError{}
			ve.Add("email", domain.CodeTaken, "has already been taken")
			return ve
		}
	}
	m.ID = uuid.NewString()
	r.items[m.ID] = *m
	return nil
}

func (r *MemberRepo) GetByID(_ context.Context, id string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}
