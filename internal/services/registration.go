package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rglregistrations/internal/domain"
)

type registrationService struct {
	regRepo    domain.RegistrationRepository
	eventRepo  domain.EventRepository
	memberRepo domain.MemberRepository
	logger     *slog.Logger
	now        func() time.Time
}

func NewRegistrationService(
	regRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	memberRepo domain.MemberRepository,
	logger *slog.Logger,
) domain.RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &registrationService{
		regRepo:    regRepo,
		eventRepo:  eventRepo,
		memberRepo: memberRepo,
		logger:     logger.With("component", "registrations"),
		now:        time.Now,
	}
}

// validate runs the field rules plus the (email, event) uniqueness check and returns every failure together.
func (s *registrationService) validate(ctx context.Context, reg *domain.Registration, vctx domain.ValidationContext) error {
	var ve *domain.ValidationError
	if err := reg.Validate(vctx); err != nil && !errors.As(err, &ve) {
		return err
	}
	if ve == nil {
		ve = &domain.ValidationError{}
	}
	if reg.Email != "" {
		taken, err := s.regRepo.ExistsByEmailAndEvent(ctx, reg.Email, reg.EventID, reg.ID)
		if err != nil {
			return fmt.Errorf("check duplicate registration: %w", err)
		}
		if taken {
			ve.Add("email", domain.CodeTaken, domain.DuplicateRegistrationMessage)
		}
	}
	return ve.OrNil()
}

// checkReferences makes sure the event and member the registration points at exist.
func (s *registrationService) checkReferences(ctx context.Context, reg *domain.Registration) error {
	if reg.EventID != "" {
		if _, err := s.eventRepo.GetByID(ctx, reg.EventID); err != nil {
			return fmt.Errorf("event %s: %w", reg.EventID, err)
		}
	}
	if reg.IsMember() {
		if _, err := s.memberRepo.GetByID(ctx, *reg.MemberID); err != nil {
			return fmt.Errorf("member %s: %w", *reg.MemberID, err)
		}
	}
	return nil
}

func (s *registrationService) Create(ctx context.Context, reg *domain.Registration, vctx domain.ValidationContext) (*domain.Registration, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: registration is nil", domain.ErrInvalidInput)
	}
	reg.ID = ""
	reg.Normalize()
	if err := s.validate(ctx, reg, vctx); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, reg); err != nil {
		return nil, err
	}

	now := s.now()
	reg.CreatedAt = now
	reg.UpdatedAt = now
	if err := s.regRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrDuplicateRegistration) {
			return nil, domain.NewDuplicateRegistrationError()
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}
	reg.EmailConfirmation = ""
	s.logger.InfoContext(ctx, "registration created", "registration_id", reg.ID, "event_id", reg.EventID)
	return reg, nil
}

func (s *registrationService) Update(ctx context.Context, reg *domain.Registration, vctx domain.ValidationContext) (*domain.Registration, error) {
	if reg == nil || reg.ID == "" {
		return nil, fmt.Errorf("%w: registration id is required", domain.ErrInvalidInput)
	}
	existing, err := s.regRepo.GetByID(ctx, reg.ID)
	if err != nil {
		return nil, fmt.Errorf("registration %s: %w", reg.ID, err)
	}
	reg.Normalize()
	if err := s.validate(ctx, reg, vctx); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, reg); err != nil {
		return nil, err
	}

	reg.CreatedAt = existing.CreatedAt
	reg.UpdatedAt = s.now()
	if err := s.regRepo.Update(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrDuplicateRegistration) {
			return nil, domain.NewDuplicateRegistrationError()
		}
		return nil, fmt.Errorf("update registration %s: %w", reg.ID, err)
	}
	return s.Get(ctx, reg.ID)
}

func (s *registrationService) Get(ctx context.Context, id string) (*domain.Registration, error) {
	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("registration %s: %w", id, err)
	}
	return reg, nil
}

func (s *registrationService) List(ctx context.Context, q domain.RegistrationQuery) ([]*domain.Registration, int, error) {
	if q.Order == "" {
		q.Order = domain.OrderNewestFirst
	}
	return s.regRepo.List(ctx, q)
}

func (s *registrationService) Accepted(ctx context.Context, eventID string, opts domain.ListOptions) ([]*domain.Registration, int, error) {
	return s.List(ctx, domain.RegistrationQuery{
		EventID:    eventID,
		Scope:      domain.ScopeAccepted,
		Order:      opts.Order,
		Pagination: opts.Pagination,
	})
}

func (s *registrationService) Members(ctx context.Context, eventID string, opts domain.ListOptions) ([]*domain.Registration, int, error) {
	return s.List(ctx, domain.RegistrationQuery{
		EventID:    eventID,
		Scope:      domain.ScopeMembers,
		Order:      opts.Order,
		Pagination: opts.Pagination,
	})
}

func (s *registrationService) MarkSelection(ctx context.Context, id string, state domain.SelectionState) (*domain.Registration, error) {
	state, err := domain.ParseSelectionState(string(state))
	if err != nil {
		return nil, err
	}
	if err := s.regRepo.UpdateSelectionState(ctx, id, state, s.now()); err != nil {
		return nil, fmt.Errorf("registration %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "selection state changed", "registration_id", id, "state", state)
	return s.Get(ctx, id)
}

func (s *registrationService) RecordAttendance(ctx context.Context, id string, attendance domain.Attendance) (*domain.Registration, error) {
	if attendance.Attended == nil {
		return nil, fmt.Errorf("%w: attended must be true or false", domain.ErrInvalidInput)
	}
	if err := s.regRepo.UpdateAttendance(ctx, id, attendance, s.now()); err != nil {
		return nil, fmt.Errorf("registration %s: %w", id, err)
	}
	return s.Get(ctx, id)
}

func (s *registrationService) Summary(ctx context.Context, id string) (string, error) {
	reg, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return reg.Summary(), nil
}
