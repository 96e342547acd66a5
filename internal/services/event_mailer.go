package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rglregistrations/internal/domain"
)

// EmailObserver counts delivery attempts (implemented by observability.Metrics).
type EmailObserver interface {
	ObserveEmail(kind, status string)
}

type eventMailer struct {
	mailer     domain.Mailer
	renderer   domain.EmailTemplateRenderer
	deliveries domain.EmailDeliveryRepository
	observer   EmailObserver
	baseURL    string
	tracer     trace.Tracer
	logger     *slog.Logger
	now        func() time.Time
}

// NewEventMailer returns the EventMailer. baseURL prefixes invitation links; deliveries and observer may be nil.
func NewEventMailer(
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	deliveries domain.EmailDeliveryRepository,
	observer EmailObserver,
	baseURL string,
	logger *slog.Logger,
) domain.EventMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventMailer{
		mailer:     mailer,
		renderer:   renderer,
		deliveries: deliveries,
		observer:   observer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tracer:     otel.Tracer("rglregistrations/services"),
		logger:     logger.With("component", "event_mailer"),
		now:        time.Now,
	}
}

func (s *eventMailer) Invite(ctx context.Context, event *domain.Event, invitee *domain.Registration, invitation *domain.Invitation) (*domain.EmailMessage, error) {
	return s.deliver(ctx, domain.EmailInvite, event, invitee, invitation)
}

func (s *eventMailer) InvitationReminder(ctx context.Context, event *domain.Event, invitee *domain.Registration, invitation *domain.Invitation) (*domain.EmailMessage, error) {
	return s.deliver(ctx, domain.EmailInvitationReminder, event, invitee, invitation)
}

func (s *eventMailer) ConfirmAttendance(ctx context.Context, event *domain.Event, invitee *domain.Registration, invitation *domain.Invitation) (*domain.EmailMessage, error) {
	return s.deliver(ctx, domain.EmailConfirmAttendance, event, invitee, invitation)
}

func (s *eventMailer) ConfirmFeedback(ctx context.Context, event *domain.Event, invitee *domain.Registration, invitation *domain.Invitation) (*domain.EmailMessage, error) {
	return s.deliver(ctx, domain.EmailConfirmFeedback, event, invitee, invitation)
}

func (s *eventMailer) deliver(ctx context.Context, kind domain.EmailKind, event *domain.Event, invitee *domain.Registration, invitation *domain.Invitation) (*domain.EmailMessage, error) {
	if event == nil || invitee == nil || invitation == nil {
		return nil, fmt.Errorf("%w: %s email needs an event, an invitee and an invitation", domain.ErrInvalidInput, kind)
	}
	ctx, span := s.tracer.Start(ctx, "EventMailer."+string(kind), trace.WithAttributes(
		attribute.String("email.kind", string(kind)),
		attribute.String("registration.id", invitee.ID),
		attribute.String("event.id", event.ID),
	))
	defer span.End()

	data := domain.EventEmailData{
		Event:         event,
		Invitee:       invitee,
		Invitation:    invitation,
		EventDates:    event.Dates(),
		InvitationURL: s.baseURL + invitation.Path(),
	}
	subject, htmlBody, textBody, err := s.renderer.Render(string(kind), data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render")
		return nil, fmt.Errorf("render %s email: %w", kind, err)
	}
	msg := &domain.EmailMessage{
		From:    domain.SenderFrom,
		To:      invitee.Email,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	}

	messageID, sendErr := s.mailer.Send(ctx, msg)
	status := domain.DeliverySent
	if sendErr != nil {
		status = domain.DeliveryFailed
	}
	s.record(ctx, kind, invitee, invitation, msg, status, messageID, sendErr)
	if s.observer != nil {
		s.observer.ObserveEmail(string(kind), status)
	}

	if sendErr != nil {
		span.RecordError(sendErr)
		span.SetStatus(codes.Error, "send")
		s.logger.ErrorContext(ctx, "email delivery failed", "kind", kind, "to", msg.To, "error", sendErr)
		return nil, &domain.DeliveryError{Kind: kind, Recipient: msg.To, Err: sendErr}
	}
	s.logger.InfoContext(ctx, "email sent", "kind", kind, "to", msg.To, "message_id", messageID)
	return msg, nil
}

// record stores the delivery attempt. A failure to record does not fail the send.
func (s *eventMailer) record(ctx context.Context, kind domain.EmailKind, invitee *domain.Registration, invitation *domain.Invitation,
	msg *domain.EmailMessage, status, messageID string, sendErr error) {
	if s.deliveries == nil {
		return
	}
	d := &domain.EmailDelivery{
		Kind:              kind,
		RegistrationID:    invitee.ID,
		InvitationID:      invitation.ID,
		Recipient:         msg.To,
		Subject:           msg.Subject,
		Status:            status,
		ProviderMessageID: messageID,
		CreatedAt:         s.now(),
	}
	if sendErr != nil {
		d.Error = sendErr.Error()
	}
	if err := s.deliveries.Create(ctx, d); err != nil {
		s.logger.ErrorContext(ctx, "failed to record email delivery", "kind", kind, "registration_id", invitee.ID, "error", err)
	}
}
