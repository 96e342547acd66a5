package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rglregistrations/internal/domain"
)

var (
	_ domain.RegistrationRepository  = (*RegistrationRepo)(nil)
	_ domain.EventRepository         = (*EventRepo)(nil)
	_ domain.MemberRepository        = (*MemberRepo)(nil)
	_ domain.InvitationRepository    = (*InvitationRepo)(nil)
	_ domain.FeedbackRepository      = (*FeedbackRepo)(nil)
	_ domain.EmailDeliveryRepository = (*EmailDeliveryRepo)(nil)
)

func seed(t *testing.T, repo *RegistrationRepo, email string, created time.Time, state domain.SelectionState, attending bool) string {
	t.Helper()
	reg := &domain.Registration{
		EventID:        "ev-1",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          email,
		SelectionState: state,
		Attending:      attending,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	require.NoError(t, repo.Create(context.Background(), reg))
	return reg.ID
}

func TestRegistrationRepo_DuplicateEmailIgnoresCase(t *testing.T) {
	repo := NewRegistrationRepo()
	seed(t, repo, "ada@example.com", time.Now(), domain.SelectionPending, false)

	err := repo.Create(context.Background(), &domain.Registration{EventID: "ev-1", Email: "ADA@example.com"})
	require.ErrorIs(t, err, domain.ErrDuplicateRegistration)

	require.NoError(t, repo.Create(context.Background(), &domain.Registration{EventID: "ev-2", Email: "ada@example.com"}))
}

func TestRegistrationRepo_List(t *testing.T) {
	repo := NewRegistrationRepo()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	first := seed(t, repo, "a@example.com", base, domain.SelectionAccepted, true)
	seed(t, repo, "b@example.com", base.Add(time.Hour), domain.SelectionAccepted, false)
	third := seed(t, repo, "c@example.com", base.Add(2*time.Hour), domain.SelectionAccepted, true)

	regs, total, err := repo.List(context.Background(), domain.RegistrationQuery{EventID: "ev-1", Scope: domain.ScopeAccepted})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, regs, 2)
	assert.Equal(t, third, regs[0].ID)
	assert.Equal(t, first, regs[1].ID)

	regs, total, err = repo.List(context.Background(), domain.RegistrationQuery{
		Order:      domain.OrderOldestFirst,
		Pagination: domain.PaginationParams{Page: 2, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, regs, 1)
	assert.Equal(t, third, regs[0].ID)
}

func TestRegistrationRepo_UpdateKeepsWorkflowColumns(t *testing.T) {
	repo := NewRegistrationRepo()
	ctx := context.Background()
	id := seed(t, repo, "a@example.com", time.Now(), domain.SelectionPending, false)
	require.NoError(t, repo.UpdateSelectionState(ctx, id, domain.SelectionAccepted, time.Now()))

	reg, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	reg.FirstName = "Augusta"
	reg.SelectionState = domain.SelectionRejected
	require.NoError(t, repo.Update(ctx, reg))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", got.FirstName)
	assert.Equal(t, domain.SelectionAccepted, got.SelectionState)

	require.ErrorIs(t, repo.UpdateAttending(ctx, "missing", true, time.Now()), domain.ErrNotFound)
}

func TestInvitationRepo_OnePerInvitee(t *testing.T) {
	repo := NewInvitationRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, domain.NewEventInvitation("t1", "reg-1", "ev-1", time.Now())))
	require.ErrorIs(t, repo.Create(ctx, domain.NewEventInvitation("t2", "reg-1", "ev-1", time.Now())), domain.ErrAlreadyInvited)

	inv, err := repo.GetByToken(ctx, "t1")
	require.NoError(t, err)
	require.NoError(t, repo.UpdateAttending(ctx, inv.ID, true, time.Now()))
	inv, err = repo.GetByInviteeID(ctx, "reg-1")
	require.NoError(t, err)
	require.NotNil(t, inv.Attending)
	assert.True(t, *inv.Attending)
}

func TestFeedbackRepo_OnePerInvitation(t *testing.T) {
	repo := NewFeedbackRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.Feedback{InvitationID: "inv-1", Rating: 4}))
	require.ErrorIs(t, repo.Create(ctx, &domain.Feedback{InvitationID: "inv-1", Rating: 5}), domain.ErrFeedbackExists)
}
