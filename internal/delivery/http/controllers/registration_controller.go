package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"rglregistrations/internal/delivery/http/helpers"
	"rglregistrations/internal/domain"
)

// RegistrationRequest is the application form submitted to POST /events/{eventID}/registrations.
type RegistrationRequest struct {
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Email                 string `json:"email"`
	EmailConfirmation     string `json:"email_confirmation"`
	Gender                string `json:"gender"`
	PhoneNumber           string `json:"phone_number"`
	ProgrammingExperience string `json:"programming_experience"`
	ReasonForApplying     string `json:"reason_for_applying"`
	HowDidYouHearAboutUs  string `json:"how_did_you_hear_about_us"`
	UKResident            *bool  `json:"uk_resident"`
	OS                    string `json:"os"`
	OSVersion             string `json:"os_version"`
	TermsOfService        *bool  `json:"terms_of_service"`
	Address               string `json:"address"`
	SpokenLanguages       string `json:"spoken_languages"`
	PreferredLanguage     string `json:"preferred_language"`
	Twitter               string `json:"twitter"`
	DietaryRestrictions   string `json:"dietary_restrictions"`
}

// apply copies the form fields onto reg.
func (f RegistrationRequest) apply(reg *domain.Registration) {
	reg.FirstName = f.FirstName
	reg.LastName = f.LastName
	reg.Email = f.Email
	reg.EmailConfirmation = f.EmailConfirmation
	reg.Gender = f.Gender
	reg.PhoneNumber = f.PhoneNumber
	reg.ProgrammingExperience = f.ProgrammingExperience
	reg.ReasonForApplying = f.ReasonForApplying
	reg.HowDidYouHearAboutUs = f.HowDidYouHearAboutUs
	reg.UKResident = f.UKResident
	reg.OS = f.OS
	reg.OSVersion = f.OSVersion
	reg.TermsOfService = f.TermsOfService
	reg.Address = f.Address
	reg.SpokenLanguages = f.SpokenLanguages
	reg.PreferredLanguage = f.PreferredLanguage
	reg.Twitter = f.Twitter
	reg.DietaryRestrictions = f.DietaryRestrictions
}

// UpdateRegistrationRequest is the request body for PUT /admin/registrations/{registrationID}.
// Form fields are replaced; event_id and member_id are kept unless given. An empty
// member_id unlinks the member.
type UpdateRegistrationRequest struct {
	RegistrationRequest
	EventID  *string `json:"event_id" validate:"omitempty,uuid"`
	MemberID *string `json:"member_id" validate:"omitempty,uuid"`
}

// SelectionRequest is the request body for PUT /admin/registrations/{registrationID}/selection.
type SelectionRequest struct {
	State string `json:"state" validate:"notblank"`
}

// AttendanceRequest is the request body for PUT /admin/registrations/{registrationID}/attendance.
type AttendanceRequest struct {
	Attended *bool  `json:"attended" validate:"required"`
	Note     string `json:"note" validate:"max=500"`
}

// RegistrationSuccessResponse is the success response envelope for a single registration.
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListRegistrationsResponse is the data payload for GET /admin/registrations.
type ListRegistrationsResponse struct {
	Items      []*domain.Registration `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateRegistration godoc
// @Summary Apply for an event
// @Description Submits the public application form. All form fields are required except gender, twitter and dietary_restrictions; terms_of_service must be true and email_confirmation must match email. One registration per email and event.
// @Tags registrations
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param registration body RegistrationRequest true "Application form"
// @Success 201 {object} controllers.RegistrationSuccessResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req RegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg := &domain.Registration{EventID: eventID}
	req.apply(reg)
	created, err := c.Service.Create(r.Context(), reg, domain.ValidateRegistration)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListRegistrations godoc
// @Summary List registrations
// @Description Lists registrations, optionally for one event. scope=accepted keeps accepted registrations that confirmed attendance; scope=members keeps registrations linked to a member.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Event ID (UUID)"
// @Param scope query string false "all, accepted or members"
// @Param order query string false "newest (default) or oldest"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/registrations [get]
func (c *RegistrationController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	query, ok := helpers.ParseRegistrationListQuery(w, r)
	if !ok {
		return
	}
	opts := domain.ListOptions{Order: query.Order, Pagination: query.Pagination}

	var (
		regs  []*domain.Registration
		total int
		err   error
	)
	switch query.Scope {
	case domain.ScopeAccepted:
		regs, total, err = c.Service.Accepted(r.Context(), query.EventID, opts)
	case domain.ScopeMembers:
		regs, total, err = c.Service.Members(r.Context(), query.EventID, opts)
	default:
		regs, total, err = c.Service.List(r.Context(), query)
	}
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	meta := helpers.NewPaginationMeta(query.Pagination, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListRegistrationsResponse{Items: regs, Pagination: meta})
}

// GetRegistration godoc
// @Summary Get a registration
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data contains the registration"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/registrations/{registrationID} [get]
func (c *RegistrationController) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	reg, err := c.Service.Get(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// UpdateRegistration godoc
// @Summary Edit a registration
// @Description Replaces the form fields of a registration. Only first_name, last_name and email are required here.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param registration body UpdateRegistrationRequest true "Registration fields"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data contains the updated registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Router /admin/registrations/{registrationID} [put]
func (c *RegistrationController) UpdateRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	var req UpdateRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.Get(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	req.apply(reg)
	if req.EventID != nil {
		reg.EventID = strings.TrimSpace(*req.EventID)
	}
	if req.MemberID != nil {
		reg.MemberID = req.MemberID
	}
	updated, err := c.Service.Update(r.Context(), reg, domain.ValidateDefault)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// GetRegistrationSummary godoc
// @Summary Registration summary
// @Description Plain-text "Label: value" lines reviewers read first.
// @Tags registrations
// @Produce plain
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {string} string "summary"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/registrations/{registrationID}/summary [get]
func (c *RegistrationController) GetRegistrationSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	summary, err := c.Service.Summary(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(summary))
}

// MarkSelection godoc
// @Summary Set the selection state
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param body body SelectionRequest true "pending, accepted, rejected or waiting_list"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/registrations/{registrationID}/selection [put]
func (c *RegistrationController) MarkSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	var req SelectionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.MarkSelection(r.Context(), id, domain.SelectionState(req.State))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// RecordAttendance godoc
// @Summary Record attendance
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param body body AttendanceRequest true "Attendance"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/registrations/{registrationID}/attendance [put]
func (c *RegistrationController) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "registrationID")
	if !ok {
		return
	}
	var req AttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.RecordAttendance(r.Context(), id, domain.Attendance{Attended: req.Attended, Note: req.Note})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
