package domain

import (
	"context"
	"time"
)

// Invitation relates one registration (the invitee) to an invitable entity and tracks the RSVP.
// swagger:model Invitation
type Invitation struct {
	ID            string    `json:"id"`
	Token         string    `json:"token"`
	InviteeID     string    `json:"invitee_id"`
	InvitableType string    `json:"invitable_type"`
	InvitableID   string    `json:"invitable_id"`
	Attending     *bool     `json:"attending"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewEventInvitation returns an invitation of the registration to the event. ID is set by the repository on create.
func NewEventInvitation(token, inviteeID, eventID string, createdAt time.Time) *Invitation {
	return &Invitation{
		Token:         token,
		InviteeID:     inviteeID,
		InvitableType: InvitableEvent,
		InvitableID:   eventID,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

// Path is the public path of the invitation page.
func (i *Invitation) Path() string {
	return "/invitations/" + i.Token
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	GetByInviteeID(ctx context.Context, inviteeID string) (*Invitation, error)
	UpdateAttending(ctx context.Context, id string, attending bool, updatedAt time.Time) error
}

// InvitationDetails bundles an invitation with the records its emails need.
type InvitationDetails struct {
	Invitation *Invitation   `json:"invitation"`
	Invitee    *Registration `json:"invitee"`
	Event      *Event        `json:"event"`
}

// InvitationService drives the invite, reminder, RSVP and feedback workflow.
type InvitationService interface {
	// Invite creates the registration's invitation and sends the invitation email.
	Invite(ctx context.Context, registrationID string) (*InvitationDetails, error)
	// Remind re-sends the RSVP reminder for an existing invitation.
	Remind(ctx context.Context, registrationID string) (*InvitationDetails, error)
	// Respond stores the invitee's RSVP; accepting sends the attendance confirmation.
	Respond(ctx context.Context, token string, attending bool) (*InvitationDetails, error)
	// SubmitFeedback stores the invitee's feedback and sends the thank-you email.
	SubmitFeedback(ctx context.Context, token string, rating int, comment string) (*Feedback, error)
	GetByToken(ctx context.Context, token string) (*InvitationDetails, error)
}
