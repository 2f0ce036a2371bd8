package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/taskboard/taskboard-be/internal/models"
)

// Session is the durable client-side auth state: the bearer token and the
// cached user it belongs to.
type Session struct {
	Token string           `json:"token"`
	User  *models.SafeUser `json:"user,omitempty"`
}

// Authenticated reports whether a token is held.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store persists a Session as a JSON file.
type Store struct {
	path string
}

// NewStore creates a store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore places the session file under the user's config directory.
func DefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(dir, "taskboard", "session.json")), nil
}

// Load reads the persisted session. A missing file yields an empty session.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt session file is treated as logged out
		return Session{}, nil
	}
	return sess, nil
}

// Save writes the session to disk.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the persisted session.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Manager owns the in-memory session and keeps the store synchronized on
// every transition. There is no ambient mutation: all state changes go
// through these methods.
type Manager struct {
	store   *Store
	current Session
}

// NewManager creates a manager over the given store and loads the persisted
// session.
func NewManager(store *Store) (*Manager, error) {
	sess, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Manager{store: store, current: sess}, nil
}

// Current returns the session as it stands.
func (m *Manager) Current() Session {
	return m.current
}

// SetAuthenticated records a successful login or registration.
func (m *Manager) SetAuthenticated(token string, user models.SafeUser) error {
	m.current = Session{Token: token, User: &user}
	return m.store.Save(m.current)
}

// SetUser refreshes the cached user without touching the token.
func (m *Manager) SetUser(user models.SafeUser) error {
	m.current.User = &user
	return m.store.Save(m.current)
}

// Clear logs out: both the in-memory state and the persisted file are
// dropped. Tokens are not revoked server-side; they expire passively.
func (m *Manager) Clear() error {
	m.current = Session{}
	return m.store.Clear()
}
