package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"rglregistrations/internal/delivery/http/controllers"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth         *controllers.AuthController
	Event        *controllers.EventController
	Registration *controllers.RegistrationController
	Invitation   *controllers.InvitationController
	Member       *controllers.MemberController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth guards every /admin route; metrics, when non-nil, is served on /metrics.
func NewRouter(c Controllers, requireAuth func(http.HandlerFunc) http.HandlerFunc, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Public
	mux.HandleFunc("GET /events", c.Event.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Event.GetEvent)
	mux.HandleFunc("POST /events/{eventID}/registrations", c.Registration.CreateRegistration)
	mux.HandleFunc("GET /invitations/{token}", c.Invitation.GetInvitation)
	mux.HandleFunc("POST /invitations/{token}/rsvp", c.Invitation.RSVP)
	mux.HandleFunc("POST /invitations/{token}/feedback", c.Invitation.SubmitFeedback)

	// Admin
	mux.HandleFunc("POST /admin/events", requireAuth(c.Event.CreateEvent))
	mux.HandleFunc("GET /admin/registrations", requireAuth(c.Registration.ListRegistrations))
	mux.HandleFunc("GET /admin/registrations/{registrationID}", requireAuth(c.Registration.GetRegistration))
	mux.HandleFunc("PUT /admin/registrations/{registrationID}", requireAuth(c.Registration.UpdateRegistration))
	mux.HandleFunc("GET /admin/registrations/{registrationID}/summary", requireAuth(c.Registration.GetRegistrationSummary))
	mux.HandleFunc("PUT /admin/registrations/{registrationID}/selection", requireAuth(c.Registration.MarkSelection))
	mux.HandleFunc("PUT /admin/registrations/{registrationID}/attendance", requireAuth(c.Registration.RecordAttendance))
	mux.HandleFunc("POST /admin/registrations/{registrationID}/invitation", requireAuth(c.Invitation.Invite))
	mux.HandleFunc("POST /admin/registrations/{registrationID}/reminder", requireAuth(c.Invitation.Remind))
	mux.HandleFunc("POST /admin/members", requireAuth(c.Member.CreateMember))
	mux.HandleFunc("GET /admin/members/{memberID}", requireAuth(c.Member.GetMember))

	// Ops
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
