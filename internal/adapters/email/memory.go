package email

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"rglregistrations/internal/domain"
)

// MemoryMailer records every message instead of sending it. Set Err to make Send fail.
type MemoryMailer struct {
	mu         sync.Mutex
	deliveries []domain.EmailMessage
	Err        error
}

func NewMemoryMailer() *MemoryMailer {
	return &MemoryMailer{}
}

func (m *MemoryMailer) Send(_ context.Context, msg *domain.EmailMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.deliveries = append(m.deliveries, *msg)
	return "memory-" + uuid.NewString(), nil
}

// Deliveries returns a copy of the messages sent so far, oldest first.
func (m *MemoryMailer) Deliveries() []domain.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.EmailMessage, len(m.deliveries))
	copy(out, m.deliveries)
	return out
}

// Last returns the most recent message, or nil.
func (m *MemoryMailer) Last() *domain.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.deliveries) == 0 {
		return nil
	}
	msg := m.deliveries[len(m.deliveries)-1]
	return &msg
}

// Reset forgets recorded messages.
func (m *MemoryMailer) Reset() {
	m.mu.Lock()
	m.deliveries = nil
	m.mu.Unlock()
}
