package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"rglregistrations/internal/delivery/http/helpers"
)

// pathID returns the UUID path value called name. Malformed IDs cannot match a
// stored record, so they are answered with 404 before reaching the service.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if err := uuid.Validate(id); err != nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, name+" not found")
		return "", false
	}
	return id, true
}
