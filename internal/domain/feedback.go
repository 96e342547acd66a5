package domain

import (
	"context"
	"time"
)

// Feedback rating bounds.
const (
	MinFeedbackRating = 1
	MaxFeedbackRating = 5
)

// Feedback is an invitee's review of the event they were invited to.
// swagger:model Feedback
type Feedback struct {
	ID           string    `json:"id"`
	InvitationID string    `json:"invitation_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the rating range.
func (f *Feedback) Validate() error {
	ve := &ValidationError{}
	if f.Rating < MinFeedbackRating || f.Rating > MaxFeedbackRating {
		ve.Add("rating", CodeInvalid, "must be between 1 and 5")
	}
	return ve.OrNil()
}

// FeedbackRepository defines storage operations for feedback. Create returns
// ErrFeedbackExists when the invitation already has feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, f *Feedback) error
	GetByInvitationID(ctx context.Context, invitationID string) (*Feedback, error)
}
