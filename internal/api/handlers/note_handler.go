package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/taskboard/taskboard-be/internal/services"
	"github.com/taskboard/taskboard-be/internal/validation"
)

// NoteHandler handles HTTP requests for note management.
type NoteHandler struct {
	notes services.NoteServiceProvider
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes services.NoteServiceProvider) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// NoteCreatePayload defines the structure for note creation requests.
type NoteCreatePayload struct {
	Title   string   `json:"title" validate:"required,min=2"`
	Content string   `json:"content" validate:"omitempty,max=2000"`
	Tags    []string `json:"tags"`
}

// NoteUpdatePayload defines the structure for partial note updates.
type NoteUpdatePayload struct {
	Title   *string   `json:"title" validate:"omitempty,min=2"`
	Content *string   `json:"content" validate:"omitempty,max=2000"`
	Tags    *[]string `json:"tags"`
}

// List retrieves the caller's notes, most recently updated first.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	notes, err := h.notes.ListNotes(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list notes")
		respondServiceError(w, err, "Note not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"notes": notes})
}

// Create creates a new note owned by the caller.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var payload NoteCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Check(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.notes.CreateNote(userID, payload.Title, payload.Content, payload.Tags)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create note")
		respondServiceError(w, err, "Note not found")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"note": note})
}

// Update applies a partial change to a note owned by the caller.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var payload NoteUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Check(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.notes.UpdateNote(userID, id, services.NoteUpdate{
		Title:   payload.Title,
		Content: payload.Content,
		Tags:    payload.Tags,
	})
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("note_id", id).Msg("Failed to update note")
		respondServiceError(w, err, "Note not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"note": note})
}

// Delete removes a note owned by the caller.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.notes.DeleteNote(userID, id); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("note_id", id).Msg("Failed to delete note")
		respondServiceError(w, err, "Note not found")
		return
	}

	respondMessage(w, http.StatusOK, "Deleted")
}
