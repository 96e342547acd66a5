package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rglregistrations/internal/domain"
)

func emailData() domain.EventEmailData {
	ev := &domain.Event{
		Title:    "Rails Girls London Summer",
		StartsOn: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndsOn:   time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
	}
	inv := &domain.Invitation{Token: "tok-1"}
	return domain.EventEmailData{
		Event:         ev,
		Invitee:       &domain.Registration{FirstName: "Ada", Email: "ada@example.com"},
		Invitation:    inv,
		EventDates:    ev.Dates(),
		InvitationURL: "https://rgl.example" + inv.Path(),
	}
}

func TestTemplateRenderer_Render(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	tests := []struct {
		kind      domain.EmailKind
		subject   string
		wantsRSVP bool
	}{
		{domain.EmailInvite, "You are invited to the Rails Girls London workshop on the 1 - 2 June 2024", true},
		{domain.EmailInvitationReminder, "Rails Girls London - Please RSVP your attendance", true},
		{domain.EmailConfirmAttendance, "RGL - You are confirmed for Rails Girls London Summer 1 - 2 June 2024", false},
		{domain.EmailConfirmFeedback, "RGL - Thank you for your feedback for Rails Girls London Summer 1 - 2 June 2024!", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			subject, html, text, err := r.Render(string(tt.kind), emailData())
			require.NoError(t, err)
			assert.Equal(t, tt.subject, subject)
			assert.Contains(t, html, "Ada")
			assert.Contains(t, text, "Ada")
			if tt.wantsRSVP {
				assert.Contains(t, html, "/invitations/tok-1")
				assert.Contains(t, text, "https://rgl.example/invitations/tok-1")
			}
		})
	}
}

func TestTemplateRenderer_EscapesHTML(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	data := emailData()
	data.Invitee.FirstName = "<b>Ada</b>"
	_, html, text, err := r.Render(string(domain.EmailInvite), data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>Ada</b>")
	assert.Contains(t, text, "<b>Ada</b>")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	_, _, _, err = r.Render("welcome", emailData())
	require.Error(t, err)
}
