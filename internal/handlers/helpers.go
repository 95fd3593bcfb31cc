package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy to HTTP statuses. Anything
// outside the taxonomy is a server error and only its existence is exposed.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var validation *apperr.ValidationError
	var notFound *apperr.NotFoundError
	var authz *apperr.AuthorizationError

	switch {
	case errors.As(err, &validation):
		http.Error(w, validation.Msg, http.StatusBadRequest)
	case errors.As(err, &notFound):
		http.Error(w, notFound.Msg, http.StatusNotFound)
	case errors.As(err, &authz):
		http.Error(w, authz.Msg, http.StatusForbidden)
	default:
		log.Error("internal error", zap.Error(err))
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}
