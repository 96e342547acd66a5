package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rglregistrations/config"
	"rglregistrations/internal/adapters/auth"
	"rglregistrations/internal/adapters/email"
	"rglregistrations/internal/delivery/http/helpers"
	"rglregistrations/internal/domain"
)

type harness struct {
	t       *testing.T
	handler http.Handler
	mail    *email.MemoryMailer
	token   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	creds, err := auth.NewCredentials(auth.NewBcryptHasher(bcrypt.MinCost), "organiser@example.com", "correct horse")
	require.NoError(t, err)
	cfg := &config.Config{
		BaseURL:            "https://railsgirls.london",
		CORSAllowedOrigins: []string{"https://railsgirls.london"},
		JWTSecret:          "test-secret",
		JWTExpiry:          time.Hour,
		AdminEmail:         creds.Email,
		AdminPasswordSalt:  creds.PasswordSalt,
		AdminPasswordHash:  creds.PasswordHash,
		EventCacheTTL:      time.Minute,
	}
	mail := email.NewMemoryMailer()
	a, err := New(Options{
		Config:   cfg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stores:   MemoryStores(),
		Mailer:   mail,
		Registry: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	return &harness{t: t, handler: a.Handler, mail: mail}
}

// do sends a JSON request and decodes the envelope data into dest when given.
func (h *harness) do(method, path, body string, dest any) *httptest.ResponseRecorder {
	h.t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	if dest != nil && strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		var envelope helpers.APIResponse
		require.NoError(h.t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		if envelope.Data != nil {
			raw, err := json.Marshal(envelope.Data)
			require.NoError(h.t, err)
			require.NoError(h.t, json.Unmarshal(raw, dest))
		}
	}
	return rr
}

func application(email string) string {
	return `{
		"first_name": "Ada", "last_name": "Lovelace",
		"email": "` + email + `", "email_confirmation": "` + email + `",
		"phone_number": "07000 000000", "programming_experience": "A little Python",
		"reason_for_applying": "Curious", "how_did_you_hear_about_us": "A friend",
		"uk_resident": true, "os": "macOS", "os_version": "14", "terms_of_service": true,
		"address": "London", "spoken_languages": "English", "preferred_language": "English"
	}`
}

func TestApp_RegistrationWorkflow(t *testing.T) {
	h := newHarness(t)

	// Admin routes need a token.
	rr := h.do(http.MethodPost, "/admin/events", `{"title":"Rails Girls London","starts_on":"2024-06-01"}`, nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var login struct {
		Token string `json:"token"`
	}
	rr = h.do(http.MethodPost, "/auth/login", `{"email":"organiser@example.com","password":"correct horse"}`, &login)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NotEmpty(t, login.Token)
	h.token = login.Token

	var event domain.Event
	rr = h.do(http.MethodPost, "/admin/events", `{"title":"Rails Girls London","starts_on":"2024-06-01","ends_on":"2024-06-02"}`, &event)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// Public application, then a duplicate with different casing.
	var reg domain.Registration
	rr = h.do(http.MethodPost, "/events/"+event.ID+"/registrations", application("ada@example.com"), &reg)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, domain.SelectionPending, reg.SelectionState)
	assert.Empty(t, reg.EmailConfirmation)

	rr = h.do(http.MethodPost, "/events/"+event.ID+"/registrations", application("ADA@example.com"), nil)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "already registered for this event")

	var list struct {
		Items []domain.Registration `json:"items"`
	}
	acceptedPath := "/admin/registrations?scope=accepted&event_id=" + event.ID
	h.do(http.MethodGet, acceptedPath, "", &list)
	assert.Empty(t, list.Items)

	rr = h.do(http.MethodPut, "/admin/registrations/"+reg.ID+"/selection", `{"state":"accepted"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// Invite: the email carries the invitation link.
	var details domain.InvitationDetails
	rr = h.do(http.MethodPost, "/admin/registrations/"+reg.ID+"/invitation", "", &details)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	msg := h.mail.Last()
	require.NotNil(t, msg)
	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "You are invited to the Rails Girls London workshop on the 1 - 2 June 2024", msg.Subject)
	assert.Contains(t, msg.Text, "https://railsgirls.london/invitations/"+details.Invitation.Token)

	rr = h.do(http.MethodPost, "/admin/registrations/"+reg.ID+"/invitation", "", nil)
	require.Equal(t, http.StatusConflict, rr.Code)

	// The invitee answers without a token.
	h.token = ""
	rr = h.do(http.MethodPost, "/invitations/"+details.Invitation.Token+"/rsvp", `{"attending":true}`, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, h.mail.Last().Subject, "confirm")

	rr = h.do(http.MethodPost, "/invitations/"+details.Invitation.Token+"/feedback", `{"rating":5,"comment":"Loved it"}`, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = h.do(http.MethodPost, "/invitations/"+details.Invitation.Token+"/feedback", `{"rating":4}`, nil)
	require.Equal(t, http.StatusConflict, rr.Code)
	h.token = login.Token

	// Accepted and attending now.
	h.do(http.MethodGet, acceptedPath, "", &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, reg.ID, list.Items[0].ID)

	rr = h.do(http.MethodGet, "/admin/registrations/"+reg.ID+"/summary", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Fullname: Ada Lovelace\n")

	rr = h.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `rgl_http_requests_total{method="POST",route="POST /events/{eventID}/registrations",status="201"} 1`)
	assert.Contains(t, body, `rgl_emails_total{kind="invite",status="sent"} 1`)
}

func TestApp_CORSAndHealth(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodOptions, "/events", nil)
	req.Header.Set("Origin", "https://railsgirls.london")
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://railsgirls.london", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = h.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = h.do(http.MethodGet, "/events", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"items":[]`)
}
