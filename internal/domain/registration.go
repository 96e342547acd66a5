package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SelectionState is the workflow status of a registration.
type SelectionState string

const (
	SelectionPending     SelectionState = "pending"
	SelectionAccepted    SelectionState = "accepted"
	SelectionRejected    SelectionState = "rejected"
	SelectionWaitingList SelectionState = "waiting_list"
)

// ParseSelectionState returns the state named by s, or ErrInvalidInput.
func ParseSelectionState(s string) (SelectionState, error) {
	switch st := SelectionState(strings.ToLower(strings.TrimSpace(s))); st {
	case SelectionPending, SelectionAccepted, SelectionRejected, SelectionWaitingList:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown selection state %q", ErrInvalidInput, s)
}

// Registration is a person's application to attend an event.
// swagger:model Registration
type Registration struct {
	ID       string  `json:"id"`
	EventID  string  `json:"event_id"`
	MemberID *string `json:"member_id,omitempty"`

	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	EmailConfirmation string `json:"email_confirmation,omitempty"`

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

	SelectionState SelectionState `json:"selection_state"`
	Attending      bool           `json:"attending"`
	Attendance     Attendance     `json:"attendance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName concatenates first and last name.
func (r *Registration) FullName() string {
	return r.FirstName + " " + r.LastName
}

// Name is an alias of FullName.
func (r *Registration) Name() string {
	return r.FullName()
}

// IsMember reports whether the registration is linked to a member.
func (r *Registration) IsMember() bool {
	return r.MemberID != nil && *r.MemberID != ""
}

// IsAccepted reports whether the registrant was selected and is attending.
func (r *Registration) IsAccepted() bool {
	return r.SelectionState == SelectionAccepted && r.Attending
}

// InScope reports whether the registration belongs to the given query scope.
func (r *Registration) InScope(scope RegistrationScope) bool {
	switch scope {
	case ScopeAccepted:
		return r.IsAccepted()
	case ScopeMembers:
		return r.IsMember()
	}
	return true
}

// Normalize trims surrounding whitespace from identity fields.
func (r *Registration) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.EmailConfirmation = strings.TrimSpace(r.EmailConfirmation)
	if r.MemberID != nil && strings.TrimSpace(*r.MemberID) == "" {
		r.MemberID = nil
	}
	if r.SelectionState == "" {
		r.SelectionState = SelectionPending
	}
}

// summaryFields is the ordered list of fields shown by Summary.
var summaryFields = []string{
	"fullname",
	"gender",
	"uk_resident",
	"programming_experience",
	"spoken_languages",
	"preferred_language",
}

// Summary renders "Label: value" lines for the fields reviewers look at first.
func (r *Registration) Summary() string {
	lines := make([]string, 0, len(summaryFields))
	for _, f := range summaryFields {
		lines = append(lines, humanize(f)+": "+r.summaryValue(f))
	}
	return strings.Join(lines, "\n")
}

func (r *Registration) summaryValue(field string) string {
	switch field {
	case "fullname":
		return r.FullName()
	case "gender":
		return r.Gender
	case "uk_resident":
		if r.UKResident == nil {
			return ""
		}
		return strconv.FormatBool(*r.UKResident)
	case "programming_experience":
		return r.ProgrammingExperience
	case "spoken_languages":
		return r.SpokenLanguages
	case "preferred_language":
		return r.PreferredLanguage
	}
	return ""
}

// humanize turns a snake_case attribute name into a label: "uk_resident" -> "Uk resident".
func humanize(attr string) string {
	s := strings.TrimSuffix(attr, "_id")
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// RegistrationScope restricts list queries.
type RegistrationScope string

const (
	ScopeAll      RegistrationScope = ""
	ScopeAccepted RegistrationScope = "accepted"
	ScopeMembers  RegistrationScope = "members"
)

// ParseRegistrationScope maps "", "all", "accepted" and "members" to a scope.
func ParseRegistrationScope(s string) (RegistrationScope, bool) {
	switch s {
	case "", "all":
		return ScopeAll, true
	case "accepted":
		return ScopeAccepted, true
	case "members":
		return ScopeMembers, true
	}
	return "", false
}

// RegistrationQuery filters, orders and pages registration lists.
type RegistrationQuery struct {
	EventID    string
	Scope      RegistrationScope
	Order      SortOrder
	Pagination PaginationParams
}

// ListOptions holds the ordering and paging applied by the scope helpers.
type ListOptions struct {
	Order      SortOrder
	Pagination PaginationParams
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	Update(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	// ExistsByEmailAndEvent reports whether another registration (excluding excludeID) uses the pair.
	ExistsByEmailAndEvent(ctx context.Context, email, eventID, excludeID string) (bool, error)
	List(ctx context.Context, q RegistrationQuery) ([]*Registration, int, error)
	UpdateSelectionState(ctx context.Context, id string, state SelectionState, updatedAt time.Time) error
	UpdateAttending(ctx context.Context, id string, attending bool, updatedAt time.Time) error
	UpdateAttendance(ctx context.Context, id string, attendance Attendance, updatedAt time.Time) error
}

// RegistrationService defines the registration store operations.
type RegistrationService interface {
	Create(ctx context.Context, reg *Registration, vctx ValidationContext) (*Registration, error)
	Update(ctx context.Context, reg *Registration, vctx ValidationContext) (*Registration, error)
	Get(ctx context.Context, id string) (*Registration, error)
	List(ctx context.Context, q RegistrationQuery) ([]*Registration, int, error)
	Accepted(ctx context.Context, eventID string, opts ListOptions) ([]*Registration, int, error)
	Members(ctx context.Context, eventID string, opts ListOptions) ([]*Registration, int, error)
	MarkSelection(ctx context.Context, id string, state SelectionState) (*Registration, error)
	RecordAttendance(ctx context.Context, id string, attendance Attendance) (*Registration, error)
	Summary(ctx context.Context, id string) (string, error)
}
