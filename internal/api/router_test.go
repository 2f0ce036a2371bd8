package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-be/internal/auth"
	"github.com/taskboard/taskboard-be/internal/database"
	"github.com/taskboard/taskboard-be/internal/services"
)

func newTestServer(t *testing.T) (*httptest.Server, *auth.Manager) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	tokens := auth.NewManager("test-secret")
	router := NewRouter(tokens,
		services.NewUserService(db),
		services.NewTaskService(db),
		services.NewNoteService(db),
		"*")

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, tokens
}

// doJSON issues one request and decodes the response body into a generic map.
func doJSON(t *testing.T, method, url, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func registerUser(t *testing.T, srv *httptest.Server, email string) (token string, userID string) {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name": "Test User", "email": email, "password": "password1",
	})
	require.Equal(t, http.StatusCreated, status, "register failed: %v", body)

	user := body["user"].(map[string]interface{})
	return body["token"].(string), user["id"].(string)
}

func TestLiveness(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestRegister(t *testing.T) {
	srv, tokens := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "password1", "bio": "hi",
	})
	require.Equal(t, http.StatusCreated, status)

	user := body["user"].(map[string]interface{})
	assert.NotContains(t, user, "passwordHash", "hash never leaves the server")
	assert.Equal(t, "ada@example.com", user["contactEmail"], "contact email falls back to account email")

	// The token's subject resolves to the created user's id.
	subject, err := tokens.ParseToken(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user["id"], subject)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv, "ada@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name": "Other", "email": "ADA@example.com", "password": "password2",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", body["message"])
}

func TestRegister_ValidationFirstErrorOnly(t *testing.T) {
	srv, _ := newTestServer(t)

	// Every field is invalid; only the first schema rule is reported.
	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name": "", "email": "nope", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name is required", body["message"])
}

func TestLogin_GenericFailureMessage(t *testing.T) {
	srv, _ := newTestServer(t)
	registerUser(t, srv, "ada@example.com")

	// Wrong password and unknown email are indistinguishable.
	status1, body1 := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong1",
	})
	status2, body2 := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "password1",
	})
	assert.Equal(t, http.StatusUnauthorized, status1)
	assert.Equal(t, http.StatusUnauthorized, status2)
	assert.Equal(t, body1["message"], body2["message"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/profile"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodGet, "/api/notes"},
	} {
		status, _ := doJSON(t, route.method, srv.URL+route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", route.method, route.path)
	}

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/tasks", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestTaskCRUD(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := registerUser(t, srv, "ada@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", token, map[string]interface{}{
		"title": "Buy milk", "priority": "low", "dueDate": "2025-06-01",
	})
	require.Equal(t, http.StatusCreated, status)
	task := body["task"].(map[string]interface{})
	taskID := task["id"].(string)
	assert.Equal(t, "todo", task["status"], "status defaults to todo")

	// Partial update: only priority changes.
	status, body = doJSON(t, http.MethodPut, srv.URL+"/api/tasks/"+taskID, token, map[string]interface{}{
		"priority": "high",
	})
	require.Equal(t, http.StatusOK, status)
	task = body["task"].(map[string]interface{})
	assert.Equal(t, "Buy milk", task["title"])
	assert.Equal(t, "high", task["priority"])
	assert.Contains(t, task, "dueDate", "omitted dueDate is preserved")

	// Explicit null clears the due date.
	status, body = doJSON(t, http.MethodPut, srv.URL+"/api/tasks/"+taskID, token, map[string]interface{}{
		"dueDate": nil,
	})
	require.Equal(t, http.StatusOK, status)
	task = body["task"].(map[string]interface{})
	assert.NotContains(t, task, "dueDate")

	status, body = doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+taskID, token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Deleted", body["message"])

	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+taskID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTaskSearchFilter(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := registerUser(t, srv, "ada@example.com")

	for _, title := range []string{"Buy milk", "Read book"} {
		status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", token, map[string]string{"title": title})
		require.Equal(t, http.StatusCreated, status)
	}

	for _, search := range []string{"milk", "MILK"} {
		status, body := doJSON(t, http.MethodGet, srv.URL+"/api/tasks?search="+search, token, nil)
		require.Equal(t, http.StatusOK, status)
		tasks := body["tasks"].([]interface{})
		require.Len(t, tasks, 1, "search %q", search)
		assert.Equal(t, "Buy milk", tasks[0].(map[string]interface{})["title"])
	}

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/tasks?status=later", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid status", body["message"])
}

func TestTasks_CrossOwnerIsolation(t *testing.T) {
	srv, _ := newTestServer(t)
	tokenA, _ := registerUser(t, srv, "alice@example.com")
	tokenB, _ := registerUser(t, srv, "bob@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", tokenA, map[string]string{"title": "Alice's"})
	require.Equal(t, http.StatusCreated, status)
	taskID := body["task"].(map[string]interface{})["id"].(string)

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/tasks", tokenB, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["tasks"])

	status, _ = doJSON(t, http.MethodPut, srv.URL+"/api/tasks/"+taskID, tokenB, map[string]string{"title": "stolen"})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+taskID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNoteRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := registerUser(t, srv, "ada@example.com")

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/notes", token, map[string]interface{}{
		"title": "T", "content": "C", "tags": []string{"go"},
	})
	require.Equal(t, http.StatusCreated, status)
	noteID := body["note"].(map[string]interface{})["id"].(string)

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/notes", token, nil)
	require.Equal(t, http.StatusOK, status)
	notes := body["notes"].([]interface{})
	require.Len(t, notes, 1)
	note := notes[0].(map[string]interface{})
	assert.Equal(t, "T", note["title"])
	assert.Equal(t, "C", note["content"])

	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/notes/"+noteID, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/notes", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["notes"])
}

func TestProfile(t *testing.T) {
	srv, _ := newTestServer(t)
	token, userID := registerUser(t, srv, "ada@example.com")

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, userID, user["id"])

	// Partial update; absent fields are untouched, empty string clears.
	status, body = doJSON(t, http.MethodPut, srv.URL+"/api/profile", token, map[string]string{
		"github": "https://github.com/ada",
	})
	require.Equal(t, http.StatusOK, status)
	user = body["user"].(map[string]interface{})
	assert.Equal(t, "https://github.com/ada", user["github"])
	assert.Equal(t, "Test User", user["name"])

	status, body = doJSON(t, http.MethodPut, srv.URL+"/api/profile", token, map[string]string{"github": ""})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "", body["user"].(map[string]interface{})["github"])
}

func TestChangePassword(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := registerUser(t, srv, "ada@example.com")

	status, body := doJSON(t, http.MethodPut, srv.URL+"/api/profile/password", token, map[string]string{
		"currentPassword": "wrong-password", "newPassword": "newpassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Current password is incorrect", body["message"])

	// The stored hash is untouched: the old password still logs in.
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "password1",
	})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, http.MethodPut, srv.URL+"/api/profile/password", token, map[string]string{
		"currentPassword": "password1", "newPassword": "newpassword1",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Password updated", body["message"])

	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "newpassword1",
	})
	assert.Equal(t, http.StatusOK, status)
}

func TestUnhandledErrorShape(t *testing.T) {
	srv, _ := newTestServer(t)
	token, _ := registerUser(t, srv, "ada@example.com")

	// A malformed body is a 400 with the uniform {message} shape.
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/tasks", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", body["message"])
}
