package controllers

import (
	"log/slog"
	"net/http"

	"rglregistrations/internal/delivery/http/helpers"
	"rglregistrations/internal/domain"
)

// RSVPRequest is the request body for POST /invitations/{token}/rsvp.
type RSVPRequest struct {
	Attending *bool `json:"attending" validate:"required"`
}

// FeedbackRequest is the request body for POST /invitations/{token}/feedback.
type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment"`
}

// InvitationView is what an invitee sees on the public invitation page.
type InvitationView struct {
	Token     string        `json:"token"`
	FirstName string        `json:"first_name"`
	Attending *bool         `json:"attending"`
	Event     *domain.Event `json:"event"`
}

func newInvitationView(d *domain.InvitationDetails) InvitationView {
	return InvitationView{
		Token:     d.Invitation.Token,
		FirstName: d.Invitee.FirstName,
		Attending: d.Invitation.Attending,
		Event:     d.Event,
	}
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// Invite godoc
// @Summary Invite a registrant
// @Description Creates the registration's invitation to its event and emails it. A registration can be invited once.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains invitation, invitee and event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 502 {object} helpers.APIResponse "error.code: delivery_failed"
// @Router /admin/registrations/{registrationID}/invitation [post]
func (c *InvitationController) Invite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	details, err := c.Service.Invite(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, details)
}

// Remind godoc
// @Summary Send an RSVP reminder
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains invitation, invitee and event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: delivery_failed"
// @Router /admin/registrations/{registrationID}/reminder [post]
func (c *InvitationController) Remind(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	details, err := c.Service.Remind(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// GetInvitation godoc
// @Summary Show an invitation
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} helpers.APIResponse "data contains the invitation view"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /invitations/{token} [get]
func (c *InvitationController) GetInvitation(w http.ResponseWriter, r *http.Request) {
	token, ok := pathID(w, r, "token")
	if !ok {
		return
	}
	details, err := c.Service.GetByToken(r.Context(), token)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newInvitationView(details))
}

// RSVP godoc
// @Summary Answer an invitation
// @Description Stores whether the invitee is coming. Accepting sends the attendance confirmation email.
// @Tags invitations
// @Accept json
// @Produce json
// @Param token path string true "Invitation token"
// @Param body body RSVPRequest true "RSVP"
// @Success 200 {object} helpers.APIResponse "data contains the invitation view"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: delivery_failed"
// @Router /invitations/{token}/rsvp [post]
func (c *InvitationController) RSVP(w http.ResponseWriter, r *http.Request) {
	token, ok := pathID(w, r, "token")
	if !ok {
		return
	}
	var req RSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	details, err := c.Service.Respond(r.Context(), token, *req.Attending)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newInvitationView(details))
}

// SubmitFeedback godoc
// @Summary Leave feedback
// @Description Rates the event from 1 to 5. One feedback per invitation; a thank-you email is sent.
// @Tags invitations
// @Accept json
// @Produce json
// @Param token path string true "Invitation token"
// @Param body body FeedbackRequest true "Feedback"
// @Success 201 {object} helpers.APIResponse "data contains the feedback"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Router /invitations/{token}/feedback [post]
func (c *InvitationController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	token, ok := pathID(w, r, "token")
	if !ok {
		return
	}
	var req FeedbackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	fb, err := c.Service.SubmitFeedback(r.Context(), token, req.Rating, req.Comment)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, fb)
}
