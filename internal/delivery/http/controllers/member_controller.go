package controllers

import (
	"log/slog"
	"net/http"

	"rglregistrations/internal/delivery/http/helpers"
	"rglregistrations/internal/domain"
)

// CreateMemberRequest is the request body for POST /admin/members.
type CreateMemberRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type MemberController struct {
	Logger  *slog.Logger
	Service domain.MemberService
}

func NewMemberController(logger *slog.Logger, svc domain.MemberService) *MemberController {
	return &MemberController{Logger: logger, Service: svc}
}

// CreateMember godoc
// @Summary Create a member
// @Description Adds a returning community member that registrations can be linked to.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param member body CreateMemberRequest true "Member data"
// @Success 201 {object} helpers.APIResponse "data contains the member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Router /admin/members [post]
func (c *MemberController) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	m, err := c.Service.Create(r.Context(), &domain.Member{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, m)
}

// GetMember godoc
// @Summary Get a member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param memberID path string true "Member ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the member"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/members/{memberID} [get]
func (c *MemberController) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "memberID")
	if !ok {
		return
	}
	m, err := c.Service.Get(r.Context(), memberID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, m)
}
