package domain

import "errors"

// ValidationContext selects which rule set applies to a registration.
type ValidationContext int

const (
	// ValidateDefault checks identity fields only; used by admin edits and imports.
	ValidateDefault ValidationContext = iota
	// ValidateRegistration additionally requires the application form fields.
	ValidateRegistration
)

const (
	msgAccepted     = "must be accepted"
	msgConfirmation = "doesn't match Email"
)

type identityFields struct {
	FirstName string `json:"first_name" validate:"notblank"`
	LastName  string `json:"last_name" validate:"notblank"`
	Email     string `json:"email" validate:"notblank"`
}

// applicationFields are required on the public form. gender stays optional.
type applicationFields struct {
	EventID               string `json:"event_id" validate:"notblank"`
	EmailConfirmation     string `json:"email_confirmation" validate:"notblank"`
	PhoneNumber           string `json:"phone_number" validate:"notblank"`
	ProgrammingExperience string `json:"programming_experience" validate:"notblank"`
	ReasonForApplying     string `json:"reason_for_applying" validate:"notblank"`
	HowDidYouHearAboutUs  string `json:"how_did_you_hear_about_us" validate:"notblank"`
	// UKResident is flattened to a plain bool: a "no" answer counts as blank.
	UKResident        bool   `json:"uk_resident" validate:"required"`
	OS                string `json:"os" validate:"notblank"`
	OSVersion         string `json:"os_version" validate:"notblank"`
	TermsOfService    *bool  `json:"terms_of_service" validate:"required"`
	Address           string `json:"address" validate:"notblank"`
	SpokenLanguages   string `json:"spoken_languages" validate:"notblank"`
	PreferredLanguage string `json:"preferred_language" validate:"notblank"`
}

func (r *Registration) identity() identityFields {
	return identityFields{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}
}

func (r *Registration) application() applicationFields {
	return applicationFields{
		EventID:               r.EventID,
		EmailConfirmation:     r.EmailConfirmation,
		PhoneNumber:           r.PhoneNumber,
		ProgrammingExperience: r.ProgrammingExperience,
		ReasonForApplying:     r.ReasonForApplying,
		HowDidYouHearAboutUs:  r.HowDidYouHearAboutUs,
		UKResident:            r.UKResident != nil && *r.UKResident,
		OS:                    r.OS,
		OSVersion:             r.OSVersion,
		TermsOfService:        r.TermsOfService,
		Address:               r.Address,
		SpokenLanguages:       r.SpokenLanguages,
		PreferredLanguage:     r.PreferredLanguage,
	}
}

// Validate checks presence, acceptance and confirmation rules. Uniqueness of the
// (email, event) pair needs storage and is checked by the registration service.
func (r *Registration) Validate(vctx ValidationContext) error {
	ve := &ValidationError{}
	collect(ve, r.identity())
	if vctx == ValidateRegistration {
		collect(ve, r.application())
	}
	if r.TermsOfService != nil && !*r.TermsOfService {
		ve.Add("terms_of_service", CodeAccepted, msgAccepted)
	}
	if r.EmailConfirmation != "" && r.EmailConfirmation != r.Email {
		ve.Add("email_confirmation", CodeConfirmation, msgConfirmation)
	}
	return ve.OrNil()
}

func collect(ve *ValidationError, fields any) {
	var tagErrs *ValidationError
	if err := ValidateStruct(fields); err != nil {
		if errors.As(err, &tagErrs) {
			ve.Fields = append(ve.Fields, tagErrs.Fields...)
			return
		}
		panic(err)
	}
}
