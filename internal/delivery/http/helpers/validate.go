package helpers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"rglregistrations/internal/domain"
)

// DecodeAndValidate decodes the JSON body into dest, rejecting unknown fields, and runs
// the `validate` struct tags of dest. A malformed body is a 400 bad_request; failed tags
// are a 422 validation_failed listing each field. Callers return when it reports false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if !isStruct(dest) {
		return true
	}
	err := domain.ValidateStruct(dest)
	if err == nil {
		return true
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		WriteJSONValidationError(w, ve)
		return false
	}
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	return false
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}
