package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/taskboard/taskboard-be/internal/services"
	"github.com/taskboard/taskboard-be/internal/validation"
)

// TaskHandler handles HTTP requests for task management.
type TaskHandler struct {
	tasks services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// TaskCreatePayload defines the structure for task creation requests.
type TaskCreatePayload struct {
	Title       string                  `json:"title" validate:"required,min=2"`
	Description string                  `json:"description" validate:"omitempty,max=500"`
	Status      string                  `json:"status" validate:"omitempty,oneof=todo in-progress done"`
	Priority    string                  `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     validation.OptionalDate `json:"dueDate"`
}

// TaskUpdatePayload defines the structure for partial task updates.
type TaskUpdatePayload struct {
	Title       *string                 `json:"title" validate:"omitempty,min=2"`
	Description *string                 `json:"description" validate:"omitempty,max=500"`
	Status      *string                 `json:"status" validate:"omitempty,oneof=todo in-progress done"`
	Priority    *string                 `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     validation.OptionalDate `json:"dueDate"`
}

// taskListQuery carries the list filters taken from the query string.
type taskListQuery struct {
	Search   string `validate:"-"`
	Status   string `validate:"omitempty,oneof=todo in-progress done"`
	Priority string `validate:"omitempty,oneof=low medium high"`
}

// List retrieves the caller's tasks, optionally filtered by search text,
// status and priority.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	query := taskListQuery{
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
		Priority: r.URL.Query().Get("priority"),
	}
	if err := validation.Check(query); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.tasks.ListTasks(userID, services.TaskFilter{
		Search:   query.Search,
		Status:   query.Status,
		Priority: query.Priority,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list tasks")
		respondServiceError(w, err, "Task not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// Create creates a new task owned by the caller.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}

	var payload TaskCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Check(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var dueDate *time.Time
	if payload.DueDate.Set && payload.DueDate.Valid {
		dueDate = &payload.DueDate.Time
	}

	task, err := h.tasks.CreateTask(userID, payload.Title, payload.Description,
		payload.Status, payload.Priority, dueDate)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create task")
		respondServiceError(w, err, "Task not found")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"task": task})
}

// Update applies a partial change to a task owned by the caller. A null
// dueDate clears the stored value; an absent one preserves it.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var payload TaskUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Check(payload); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	update := services.TaskUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		Priority:    payload.Priority,
	}
	if payload.DueDate.Set {
		if payload.DueDate.Valid {
			update.DueDate = &payload.DueDate.Time
		} else {
			update.ClearDueDate = true
		}
	}

	task, err := h.tasks.UpdateTask(userID, id, update)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("task_id", id).Msg("Failed to update task")
		respondServiceError(w, err, "Task not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"task": task})
}

// Delete removes a task owned by the caller.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.tasks.DeleteTask(userID, id); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("task_id", id).Msg("Failed to delete task")
		respondServiceError(w, err, "Task not found")
		return
	}

	respondMessage(w, http.StatusOK, "Deleted")
}
