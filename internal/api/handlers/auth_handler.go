package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/taskboard/taskboard-be/internal/auth"
	"github.com/taskboard/taskboard-be/internal/services"
	"github.com/taskboard/taskboard-be/internal/validation"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	users  services.UserServiceProvider
	tokens *auth.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Bio      string `json:"bio" validate:"omitempty,max=240"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles new user registration and issues a token for the fresh
// account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Check(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.CreateUser(payload.Name, payload.Email, payload.Password, payload.Bio)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondServiceError(w, err, "User not found")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user.Safe(),
	})
}

// Login handles user authentication and token issuance. Unknown email and
// wrong password produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Check(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		respondServiceError(w, err, "User not found")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Safe(),
	})
}
