package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/taskboard/taskboard-be/internal/services"
	"github.com/taskboard/taskboard-be/internal/validation"
)

// ProfileHandler handles requests for the authenticated user's profile.
type ProfileHandler struct {
	users services.UserServiceProvider
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(users services.UserServiceProvider) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// ProfileUpdatePayload defines the structure for profile update requests.
// Pointer fields distinguish absent from empty: absent leaves the stored
// value untouched, empty string clears the optional URL/email fields.
type ProfileUpdatePayload struct {
	Name         *string `json:"name" validate:"omitempty,min=2"`
	Bio          *string `json:"bio" validate:"omitempty,max=240"`
	Github       *string `json:"github" validate:"omitempty,url"`
	Linkedin     *string `json:"linkedin" validate:"omitempty,url"`
	Portfolio    *string `json:"portfolio" validate:"omitempty,url"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
}

// PasswordPayload defines the structure for password change requests.
type PasswordPayload struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Get retrieves the authenticated user's profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to get profile")
		respondServiceError(w, err, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user.Safe()})
}

// Update applies a partial change to the authenticated user's profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var payload ProfileUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Check(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.UpdateProfile(userID, services.ProfileUpdate{
		Name:         payload.Name,
		Bio:          payload.Bio,
		Github:       payload.Github,
		Linkedin:     payload.Linkedin,
		Portfolio:    payload.Portfolio,
		ContactEmail: payload.ContactEmail,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		respondServiceError(w, err, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user.Safe()})
}

// ChangePassword verifies the current password and replaces it with a new
// one. There is no requirement that the new password differs from the old.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var payload PasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Check(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.users.UpdatePassword(userID, payload.CurrentPassword, payload.NewPassword); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to change password")
		respondServiceError(w, err, "User not found")
		return
	}

	respondMessage(w, http.StatusOK, "Password updated")
}
