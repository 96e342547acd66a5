package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"rglregistrations/internal/delivery/http/helpers"
	"rglregistrations/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testEventID  = "7b0c6f7e-2f4e-4a55-9a53-1f0d1e0e2a01"
	testRegID    = "c3d1a7a4-54b8-4a1e-8f7e-6b1a0c5d9e02"
	testMemberID = "0f5e2a9c-1b7d-4c3e-9a8f-2d6b4e1c7a03"
	testToken    = "5a9e3c1d-7f2b-4d6a-8e0c-3b1f9d7a5c04"
)

func boolPtr(b bool) *bool { return &b }

// decodeEnvelope decodes the response envelope and, when dest is non-nil, its data.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if dest != nil && envelope.Data != nil {
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, dest))
	}
	return envelope
}

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	err        error
	result     *domain.Registration
	list       []*domain.Registration
	total      int
	summary    string
	lastCreate *domain.Registration
	lastUpdate *domain.Registration
	lastVctx   domain.ValidationContext
	lastQuery  domain.RegistrationQuery
	lastScope  domain.RegistrationScope
	lastState  domain.SelectionState
	lastAttend domain.Attendance
}

func (f *fakeRegistrationService) Create(_ context.Context, reg *domain.Registration, vctx domain.ValidationContext) (*domain.Registration, error) {
	f.lastCreate, f.lastVctx = reg, vctx
	if f.err != nil {
		return nil, f.err
	}
	reg.ID = testRegID
	return reg, nil
}

func (f *fakeRegistrationService) Update(_ context.Context, reg *domain.Registration, vctx domain.ValidationContext) (*domain.Registration, error) {
	f.lastUpdate, f.lastVctx = reg, vctx
	if f.err != nil {
		return nil, f.err
	}
	return reg, nil
}

func (f *fakeRegistrationService) Get(_ context.Context, _ string) (*domain.Registration, error) {
	if f.result == nil {
		return nil, domain.ErrNotFound
	}
	cp := *f.result
	return &cp, nil
}

func (f *fakeRegistrationService) List(_ context.Context, q domain.RegistrationQuery) ([]*domain.Registration, int, error) {
	f.lastQuery, f.lastScope = q, q.Scope
	return f.list, f.total, f.err
}

func (f *fakeRegistrationService) Accepted(_ context.Context, eventID string, opts domain.ListOptions) ([]*domain.Registration, int, error) {
	f.lastQuery = domain.RegistrationQuery{EventID: eventID, Scope: domain.ScopeAccepted, Order: opts.Order, Pagination: opts.Pagination}
	f.lastScope = domain.ScopeAccepted
	return f.list, f.total, f.err
}

func (f *fakeRegistrationService) Members(_ context.Context, eventID string, opts domain.ListOptions) ([]*domain.Registration, int, error) {
	f.lastQuery = domain.RegistrationQuery{EventID: eventID, Scope: domain.ScopeMembers, Order: opts.Order, Pagination: opts.Pagination}
	f.lastScope = domain.ScopeMembers
	return f.list, f.total, f.err
}

func (f *fakeRegistrationService) MarkSelection(_ context.Context, id string, state domain.SelectionState) (*domain.Registration, error) {
	f.lastState = state
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Registration{ID: id, SelectionState: state}, nil
}

func (f *fakeRegistrationService) RecordAttendance(_ context.Context, id string, attendance domain.Attendance) (*domain.Registration, error) {
	f.lastAttend = attendance
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Registration{ID: id, Attendance: attendance}, nil
}

func (f *fakeRegistrationService) Summary(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	err           error
	details       *domain.InvitationDetails
	lastID        string
	lastToken     string
	lastAttending *bool
	lastRating    int
}

func (f *fakeInvitationService) result() (*domain.InvitationDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func (f *fakeInvitationService) Invite(_ context.Context, registrationID string) (*domain.InvitationDetails, error) {
	f.lastID = registrationID
	return f.result()
}

func (f *fakeInvitationService) Remind(_ context.Context, registrationID string) (*domain.InvitationDetails, error) {
	f.lastID = registrationID
	return f.result()
}

func (f *fakeInvitationService) Respond(_ context.Context, token string, attending bool) (*domain.InvitationDetails, error) {
	f.lastToken, f.lastAttending = token, &attending
	return f.result()
}

func (f *fakeInvitationService) SubmitFeedback(_ context.Context, token string, rating int, comment string) (*domain.Feedback, error) {
	f.lastToken, f.lastRating = token, rating
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Feedback{ID: "fb-1", InvitationID: "inv-1", Rating: rating, Comment: comment}, nil
}

func (f *fakeInvitationService) GetByToken(_ context.Context, token string) (*domain.InvitationDetails, error) {
	f.lastToken = token
	return f.result()
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err        error
	events     map[string]*domain.Event
	lastCreate *domain.Event
	lastParams domain.PaginationParams
}

func (f *fakeEventService) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	f.lastCreate = event
	if f.err != nil {
		return nil, f.err
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	event.ID = testEventID
	return event, nil
}

func (f *fakeEventService) Get(_ context.Context, id string) (*domain.Event, error) {
	if ev, ok := f.events[id]; ok {
		return ev, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) List(_ context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, 0, f.err
	}
	out := make([]*domain.Event, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev)
	}
	return out, len(out), nil
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	token string
	err   error
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (string, error) {
	return f.token, f.err
}

// fakeMemberService implements domain.MemberService for handler tests.
type fakeMemberService struct {
	err     error
	members map[string]*domain.Member
}

func (f *fakeMemberService) Create(_ context.Context, m *domain.Member) (*domain.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.ID = testMemberID
	return m, nil
}

func (f *fakeMemberService) Get(_ context.Context, id string) (*domain.Member, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
	return nil, domain.ErrNotFound
}
