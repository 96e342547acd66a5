package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrValidation         = errors.New("validation failed")
	ErrAlreadyInvited     = errors.New("registration already has an invitation")
	ErrDelivery           = errors.New("email delivery failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFeedbackExists     = errors.New("feedback already submitted for this invitation")

	// ErrDuplicateRegistration is returned by repositories when the (email, event) pair already exists.
	// Services surface it as a ValidationError on the email field.
	ErrDuplicateRegistration = errors.New("registration already exists for this email and event")
)

// DuplicateRegistrationMessage is shown to applicants who register twice for the same event.
const DuplicateRegistrationMessage = "You've already registered for this event! Sit tight, you'll hear from us soon."

// Field error codes.
const (
	CodeBlank        = "blank"
	CodeAccepted     = "accepted"
	CodeConfirmation = "confirmation"
	CodeTaken        = "taken"
	CodeInvalid      = "invalid"
)

// FieldError describes one failed rule on one field.
// swagger:model FieldError
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError collects field-level failures. It matches ErrValidation with errors.Is,
// and ErrDuplicateRegistration when one of the failures is a taken email.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrDuplicateRegistration:
		return e.Has("email", CodeTaken)
	}
	return false
}

// Add appends a failure.
func (e *ValidationError) Add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// Has reports whether field failed with code.
func (e *ValidationError) Has(field, code string) bool {
	for _, f := range e.Fields {
		if f.Field == field && f.Code == code {
			return true
		}
	}
	return false
}

// Messages returns the messages recorded for field.
func (e *ValidationError) Messages(field string) []string {
	var out []string
	for _, f := range e.Fields {
		if f.Field == field {
			out = append(out, f.Message)
		}
	}
	return out
}

// OrNil returns nil when no failures were collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewDuplicateRegistrationError returns the validation error shown for a repeated (email, event) pair.
func NewDuplicateRegistrationError() *ValidationError {
	ve := &ValidationError{}
	ve.Add("email", CodeTaken, DuplicateRegistrationMessage)
	return ve
}

// DeliveryError wraps a transport failure for one email.
type DeliveryError struct {
	Kind      EmailKind
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s email to %s: %v", e.Kind, e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func (e *DeliveryError) Is(target error) bool { return target == ErrDelivery }
