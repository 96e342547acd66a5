package helpers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"rglregistrations/internal/domain"
)

// Page defaults and limits for list endpoints.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size. Missing or unusable values fall back to the
// defaults and page_size is capped at MaxPageSize.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.PaginationParams{
		Page:     positiveInt(q.Get("page"), DefaultPage),
		PageSize: min(positiveInt(q.Get("page_size"), DefaultPageSize), MaxPageSize),
	}
}

func positiveInt(s string, fallback int) int {
	if v, err := strconv.Atoi(s); err == nil && v >= 1 {
		return v
	}
	return fallback
}

// RegistrationListQuery is the query string of GET /admin/registrations.
type RegistrationListQuery struct {
	EventID string `json:"event_id" validate:"omitempty,uuid"`
	Scope   string `json:"scope" validate:"omitempty,oneof=all accepted members"`
	Order   string `json:"order" validate:"omitempty,oneof=newest oldest desc asc"`
}

// ParseRegistrationListQuery reads and checks the registration filters plus pagination.
// Failed checks are written as 422 validation_failed and ok is false.
func ParseRegistrationListQuery(w http.ResponseWriter, r *http.Request) (domain.RegistrationQuery, bool) {
	q := r.URL.Query()
	raw := RegistrationListQuery{
		EventID: strings.TrimSpace(q.Get("event_id")),
		Scope:   strings.ToLower(strings.TrimSpace(q.Get("scope"))),
		Order:   strings.ToLower(strings.TrimSpace(q.Get("order"))),
	}
	if err := domain.ValidateStruct(raw); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			WriteJSONValidationError(w, ve)
		} else {
			WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		}
		return domain.RegistrationQuery{}, false
	}
	scope, _ := domain.ParseRegistrationScope(raw.Scope)
	order, _ := domain.ParseSortOrder(raw.Order)
	return domain.RegistrationQuery{
		EventID:    raw.EventID,
		Scope:      scope,
		Order:      order,
		Pagination: ParsePagination(r),
	}, true
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta describes the page p of a list holding total items.
func NewPaginationMeta(p domain.PaginationParams, total int) PaginationMeta {
	meta := PaginationMeta{Page: p.Page, PageSize: p.PageSize, Total: total}
	if p.PageSize > 0 {
		meta.TotalPages = (total + p.PageSize - 1) / p.PageSize
	}
	return meta
}
