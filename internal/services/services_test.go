package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rglregistrations/internal/adapters/email"
	"rglregistrations/internal/domain"
	"rglregistrations/internal/repository/memory"
)

const testBaseURL = "https://rgl.example"

// fixture wires the services over in-memory repositories and the memory mailer.
type fixture struct {
	regs        *memory.RegistrationRepo
	events      *memory.EventRepo
	members     *memory.MemberRepo
	invitations *memory.InvitationRepo
	feedbacks   *memory.FeedbackRepo
	deliveries  *memory.EmailDeliveryRepo
	mail        *email.MemoryMailer
	observer    *countingObserver

	registrations domain.RegistrationService
	eventMailer   domain.EventMailer
	invites       domain.InvitationService
}

type countingObserver struct {
	counts map[string]int
}

func (c *countingObserver) ObserveEmail(kind, status string) {
	c.counts[kind+"/"+status]++
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	renderer, err := email.NewTemplateRenderer()
	require.NoError(t, err)

	f := &fixture{
		regs:        memory.NewRegistrationRepo(),
		events:      memory.NewEventRepo(),
		members:     memory.NewMemberRepo(),
		invitations: memory.NewInvitationRepo(),
		feedbacks:   memory.NewFeedbackRepo(),
		deliveries:  memory.NewEmailDeliveryRepo(),
		mail:        email.NewMemoryMailer(),
		observer:    &countingObserver{counts: map[string]int{}},
	}
	f.registrations = NewRegistrationService(f.regs, f.events, f.members, nil)
	f.eventMailer = NewEventMailer(f.mail, renderer, f.deliveries, f.observer, testBaseURL+"/", nil)
	f.invites = NewInvitationService(f.regs, f.events, f.invitations, f.feedbacks, f.eventMailer, nil)
	return f
}

func (f *fixture) event(t *testing.T) *domain.Event {
	t.Helper()
	ev, err := NewEventService(f.events).Create(context.Background(), &domain.Event{
		Title:    "Rails Girls London",
		StartsOn: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndsOn:   time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return ev
}

func boolPtr(b bool) *bool { return &b }

func application(eventID, addr string) *domain.Registration {
	return &domain.Registration{
		EventID:               eventID,
		FirstName:             "Ada",
		LastName:              "Lovelace",
		Email:                 addr,
		EmailConfirmation:     addr,
		PhoneNumber:           "07000 000000",
		ProgrammingExperience: "None",
		ReasonForApplying:     "Curiosity",
		HowDidYouHearAboutUs:  "Twitter",
		UKResident:            boolPtr(true),
		OS:                    "Linux",
		OSVersion:             "Ubuntu 24.04",
		TermsOfService:        boolPtr(true),
		Address:               "London",
		SpokenLanguages:       "English",
		PreferredLanguage:     "English",
	}
}

func (f *fixture) register(t *testing.T, eventID, addr string) *domain.Registration {
	t.Helper()
	reg, err := f.registrations.Create(context.Background(), application(eventID, addr), domain.ValidateRegistration)
	require.NoError(t, err)
	return reg
}
