package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"rglregistrations/internal/domain"
)

type invitationService struct {
	regRepo      domain.RegistrationRepository
	eventRepo    domain.EventRepository
	invRepo      domain.InvitationRepository
	feedbackRepo domain.FeedbackRepository
	mailer       domain.EventMailer
	logger       *slog.Logger
	now          func() time.Time
	newToken     func() string
}

func NewInvitationService(
	regRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	invRepo domain.InvitationRepository,
	feedbackRepo domain.FeedbackRepository,
	mailer domain.EventMailer,
	logger *slog.Logger,
) domain.InvitationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &invitationService{
		regRepo:      regRepo,
		eventRepo:    eventRepo,
		invRepo:      invRepo,
		feedbackRepo: feedbackRepo,
		mailer:       mailer,
		logger:       logger.With("component", "invitations"),
		now:          time.Now,
		newToken:     uuid.NewString,
	}
}

func (s *invitationService) loadInvitee(ctx context.Context, registrationID string) (*domain.Registration, *domain.Event, error) {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, nil, fmt.Errorf("registration %s: %w", registrationID, err)
	}
	if reg.EventID == "" {
		return nil, nil, fmt.Errorf("%w: registration %s is not for an event", domain.ErrInvalidInput, registrationID)
	}
	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, nil, fmt.Errorf("event %s: %w", reg.EventID, err)
	}
	return reg, event, nil
}

// details loads the invitee and event of inv.
func (s *invitationService) details(ctx context.Context, inv *domain.Invitation) (*domain.InvitationDetails, error) {
	reg, err := s.regRepo.GetByID(ctx, inv.InviteeID)
	if err != nil {
		return nil, fmt.Errorf("registration %s: %w", inv.InviteeID, err)
	}
	event, err := s.eventRepo.GetByID(ctx, inv.InvitableID)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", inv.InvitableID, err)
	}
	return &domain.InvitationDetails{Invitation: inv, Invitee: reg, Event: event}, nil
}

func (s *invitationService) Invite(ctx context.Context, registrationID string) (*domain.InvitationDetails, error) {
	reg, event, err := s.loadInvitee(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.invRepo.GetByInviteeID(ctx, reg.ID); err == nil {
		return nil, domain.ErrAlreadyInvited
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("look up invitation: %w", err)
	}

	inv := domain.NewEventInvitation(s.newToken(), reg.ID, event.ID, s.now())
	if err := s.invRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrAlreadyInvited) {
			return nil, err
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	s.logger.InfoContext(ctx, "invitation created", "registration_id", reg.ID, "invitation_id", inv.ID)

	if _, err := s.mailer.Invite(ctx, event, reg, inv); err != nil {
		return nil, err
	}
	return &domain.InvitationDetails{Invitation: inv, Invitee: reg, Event: event}, nil
}

func (s *invitationService) Remind(ctx context.Context, registrationID string) (*domain.InvitationDetails, error) {
	inv, err := s.invRepo.GetByInviteeID(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("invitation for registration %s: %w", registrationID, err)
	}
	d, err := s.details(ctx, inv)
	if err != nil {
		return nil, err
	}
	if _, err := s.mailer.InvitationReminder(ctx, d.Event, d.Invitee, d.Invitation); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *invitationService) Respond(ctx context.Context, token string, attending bool) (*domain.InvitationDetails, error) {
	d, err := s.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.invRepo.UpdateAttending(ctx, d.Invitation.ID, attending, now); err != nil {
		return nil, fmt.Errorf("update invitation %s: %w", d.Invitation.ID, err)
	}
	if err := s.regRepo.UpdateAttending(ctx, d.Invitee.ID, attending, now); err != nil {
		return nil, fmt.Errorf("update registration %s: %w", d.Invitee.ID, err)
	}
	d.Invitation.Attending = &attending
	d.Invitation.UpdatedAt = now
	d.Invitee.Attending = attending
	d.Invitee.UpdatedAt = now
	s.logger.InfoContext(ctx, "rsvp recorded", "invitation_id", d.Invitation.ID, "attending", attending)

	if attending {
		if _, err := s.mailer.ConfirmAttendance(ctx, d.Event, d.Invitee, d.Invitation); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (s *invitationService) SubmitFeedback(ctx context.Context, token string, rating int, comment string) (*domain.Feedback, error) {
	d, err := s.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	fb := &domain.Feedback{
		InvitationID: d.Invitation.ID,
		Rating:       rating,
		Comment:      comment,
		CreatedAt:    s.now(),
	}
	if err := fb.Validate(); err != nil {
		return nil, err
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		if errors.Is(err, domain.ErrFeedbackExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	if _, err := s.mailer.ConfirmFeedback(ctx, d.Event, d.Invitee, d.Invitation); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *invitationService) GetByToken(ctx context.Context, token string) (*domain.InvitationDetails, error) {
	inv, err := s.invRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("invitation: %w", err)
	}
	return s.details(ctx, inv)
}
