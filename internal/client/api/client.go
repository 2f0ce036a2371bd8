package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taskboard/taskboard-be/internal/models"
)

// ErrRequestFailed is returned for transport-level failures where no
// response was received from the server.
var ErrRequestFailed = errors.New("Request failed")

// APIError carries the server's {message} body and HTTP status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// AuthResponse is the body returned by register and login.
type AuthResponse struct {
	Token string          `json:"token"`
	User  models.SafeUser `json:"user"`
}

// Client talks to the Taskboard REST API. When a token is held, every
// request carries it as a bearer credential.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken detaches the bearer token.
func (c *Client) ClearToken() {
	c.token = ""
}

// do performs one request and decodes the JSON response into out. Error
// bodies are surfaced verbatim; transport failures are normalized to
// ErrRequestFailed.
func (c *Client) do(method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ErrRequestFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.Message == "" {
			errBody.Message = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Register creates a new account and returns the issued token and user.
func (c *Client) Register(name, email, password, bio string) (AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	if bio != "" {
		body["bio"] = bio
	}
	var resp AuthResponse
	err := c.do(http.MethodPost, "/api/auth/register", body, &resp)
	return resp, err
}

// Login authenticates and returns the issued token and user.
func (c *Client) Login(email, password string) (AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	err := c.do(http.MethodPost, "/api/auth/login", body, &resp)
	return resp, err
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile() (models.SafeUser, error) {
	var resp struct {
		User models.SafeUser `json:"user"`
	}
	err := c.do(http.MethodGet, "/api/profile", nil, &resp)
	return resp.User, err
}

// UpdateProfile sends a partial profile update. Only the fields present in
// the map are applied server-side.
func (c *Client) UpdateProfile(fields map[string]interface{}) (models.SafeUser, error) {
	var resp struct {
		User models.SafeUser `json:"user"`
	}
	err := c.do(http.MethodPut, "/api/profile", fields, &resp)
	return resp.User, err
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.do(http.MethodPut, "/api/profile/password", body, nil)
}

// TaskFilter narrows a task listing.
type TaskFilter struct {
	Search   string
	Status   string
	Priority string
}

// ListTasks fetches the caller's tasks, optionally filtered.
func (c *Client) ListTasks(filter TaskFilter) ([]models.Task, error) {
	params := url.Values{}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if filter.Priority != "" {
		params.Set("priority", filter.Priority)
	}
	path := "/api/tasks"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp struct {
		Tasks []models.Task `json:"tasks"`
	}
	err := c.do(http.MethodGet, path, nil, &resp)
	return resp.Tasks, err
}

// CreateTask creates a new task.
func (c *Client) CreateTask(fields map[string]interface{}) (models.Task, error) {
	var resp struct {
		Task models.Task `json:"task"`
	}
	err := c.do(http.MethodPost, "/api/tasks", fields, &resp)
	return resp.Task, err
}

// UpdateTask sends a partial task update. Set "dueDate" to nil in the map
// to clear the due date; leave it out to preserve it.
func (c *Client) UpdateTask(id string, fields map[string]interface{}) (models.Task, error) {
	var resp struct {
		Task models.Task `json:"task"`
	}
	err := c.do(http.MethodPut, "/api/tasks/"+id, fields, &resp)
	return resp.Task, err
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(id string) error {
	return c.do(http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// ListNotes fetches the caller's notes.
func (c *Client) ListNotes() ([]models.Note, error) {
	var resp struct {
		Notes []models.Note `json:"notes"`
	}
	err := c.do(http.MethodGet, "/api/notes", nil, &resp)
	return resp.Notes, err
}

// CreateNote creates a new note.
func (c *Client) CreateNote(fields map[string]interface{}) (models.Note, error) {
	var resp struct {
		Note models.Note `json:"note"`
	}
	err := c.do(http.MethodPost, "/api/notes", fields, &resp)
	return resp.Note, err
}

// UpdateNote sends a partial note update.
func (c *Client) UpdateNote(id string, fields map[string]interface{}) (models.Note, error) {
	var resp struct {
		Note models.Note `json:"note"`
	}
	err := c.do(http.MethodPut, "/api/notes/"+id, fields, &resp)
	return resp.Note, err
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(id string) error {
	return c.do(http.MethodDelete, "/api/notes/"+id, nil, nil)
}
