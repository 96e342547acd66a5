package domain

import (
	"context"
	"time"
)

// Sender identity used on every event email.
const (
	SenderName    = "Rails Girls London"
	SenderAddress = "railsgirlslondon@gmail.com"
	SenderFrom    = SenderName + " <" + SenderAddress + ">"
)

// EmailKind names one of the event lifecycle emails. It doubles as the template name.
type EmailKind string

const (
	EmailInvite             EmailKind = "invite"
	EmailInvitationReminder EmailKind = "invitation_reminder"
	EmailConfirmAttendance  EmailKind = "confirm_attendance"
	EmailConfirmFeedback    EmailKind = "confirm_feedback"
)

// EmailMessage is a rendered email ready for the transport.
type EmailMessage struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer defines the contract for sending emails (infrastructure port).
// It returns the provider's message id on success.
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) (string, error)
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventEmailData is the template data shared by the event emails.
type EventEmailData struct {
	Event         *Event
	Invitee       *Registration
	Invitation    *Invitation
	EventDates    string
	InvitationURL string
}

// EventMailer sends the event lifecycle emails. Each call renders, delivers and records one
// message and returns it.
type EventMailer interface {
	Invite(ctx context.Context, event *Event, invitee *Registration, invitation *Invitation) (*EmailMessage, error)
	InvitationReminder(ctx context.Context, event *Event, invitee *Registration, invitation *Invitation) (*EmailMessage, error)
	ConfirmAttendance(ctx context.Context, event *Event, invitee *Registration, invitation *Invitation) (*EmailMessage, error)
	ConfirmFeedback(ctx context.Context, event *Event, invitee *Registration, invitation *Invitation) (*EmailMessage, error)
}

// Delivery statuses.
const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// EmailDelivery records one send attempt.
// swagger:model EmailDelivery
type EmailDelivery struct {
	ID                string    `json:"id"`
	Kind              EmailKind `json:"kind"`
	RegistrationID    string    `json:"registration_id"`
	InvitationID      string    `json:"invitation_id"`
	Recipient         string    `json:"recipient"`
	Subject           string    `json:"subject"`
	Status            string    `json:"status"`
	ProviderMessageID string    `json:"provider_message_id,omitempty"`
	Error             string    `json:"error,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// EmailDeliveryRepository defines storage operations for delivery records.
type EmailDeliveryRepository interface {
	Create(ctx context.Context, d *EmailDelivery) error
	ListByRegistrationID(ctx context.Context, registrationID string) ([]*EmailDelivery, error)
}
