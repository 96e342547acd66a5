package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rglregistrations/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
	now       func() time.Time
}

func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo, now: time.Now}
}

// Create stores a new event. A missing end date means a one-day event.
func (s *eventService) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil {
		return nil, fmt.Errorf("%w: event is nil", domain.ErrInvalidInput)
	}
	event.Title = strings.TrimSpace(event.Title)
	event.Description = strings.TrimSpace(event.Description)
	event.DatesLabel = strings.TrimSpace(event.DatesLabel)
	if event.EndsOn.IsZero() {
		event.EndsOn = event.StartsOn
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", id, err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	return s.eventRepo.List(ctx, params)
}
