package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// InvitableEvent is the invitable_type stored on invitations that point at an event.
const InvitableEvent = "Event"

// Event represents a workshop that people register for.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsOn    time.Time `json:"starts_on"`
	EndsOn      time.Time `json:"ends_on"`
	// DatesLabel replaces the computed range in emails when set, e.g. "June 2024".
	DatesLabel string    `json:"dates_label,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, description string, startsOn, endsOn, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		StartsOn:    startsOn,
		EndsOn:      endsOn,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Dates renders the date range for emails, e.g. "2 June 2024", "1 - 2 June 2024",
// "30 June - 1 July 2024" or "30 December 2024 - 2 January 2025". A DatesLabel wins.
func (e *Event) Dates() string {
	if label := strings.TrimSpace(e.DatesLabel); label != "" {
		return label
	}
	start, end := e.StartsOn, e.EndsOn
	if end.IsZero() || end.Before(start) {
		end = start
	}
	switch {
	case start.Year() != end.Year():
		return fmt.Sprintf("%s - %s", start.Format("2 January 2006"), end.Format("2 January 2006"))
	case start.Month() != end.Month():
		return fmt.Sprintf("%s - %s", start.Format("2 January"), end.Format("2 January 2006"))
	case start.Day() != end.Day():
		return fmt.Sprintf("%d - %s", start.Day(), end.Format("2 January 2006"))
	default:
		return start.Format("2 January 2006")
	}
}

// Validate checks the fields required to create an event.
func (e *Event) Validate() error {
	ve := &ValidationError{}
	if e.Title == "" {
		ve.Add("title", CodeBlank, "can't be blank")
	}
	if e.StartsOn.IsZero() {
		ve.Add("starts_on", CodeBlank, "can't be blank")
	}
	if !e.EndsOn.IsZero() && e.EndsOn.Before(e.StartsOn) {
		ve.Add("ends_on", CodeInvalid, "must be on or after starts_on")
	}
	return ve.OrNil()
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
}

// EventService defines event catalogue operations.
type EventService interface {
	Create(ctx context.Context, event *Event) (*Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
}
