package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/taskboard/taskboard-be/internal/auth"
	"github.com/taskboard/taskboard-be/internal/services"
)

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondMessage writes the uniform {message} error/success body.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError maps service-layer sentinel errors onto HTTP statuses.
// Anything unrecognized becomes a 500 with the error message passed through
// and the stack suppressed.
func respondServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondMessage(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, services.ErrEmailTaken):
		respondMessage(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrWrongPassword):
		respondMessage(w, http.StatusUnauthorized, "Current password is incorrect")
	default:
		respondMessage(w, http.StatusInternalServerError, err.Error())
	}
}

// ownerID extracts the authenticated user's id placed in the context by the
// auth middleware. A miss means the route was wired without the middleware.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user id from context")
		respondMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return "", false
	}
	return id, true
}
