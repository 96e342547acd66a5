package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rglregistrations/internal/domain"
)

type memberService struct {
	memberRepo domain.MemberRepository
	now        func() time.Time
}

func NewMemberService(memberRepo domain.MemberRepository) domain.MemberService {
	return &memberService{memberRepo: memberRepo, now: time.Now}
}

func (s *memberService) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: member is nil", domain.ErrInvalidInput)
	}
	m.FirstName = strings.TrimSpace(m.FirstName)
	m.LastName = strings.TrimSpace(m.LastName)
	m.Email = strings.TrimSpace(m.Email)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.memberRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *memberService) Get(ctx context.Context, id string) (*domain.Member, error) {
	m, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", id, err)
	}
	return m, nil
}
