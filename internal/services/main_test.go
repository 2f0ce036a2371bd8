package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-be/internal/database"
	"github.com/taskboard/taskboard-be/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) models.User {
	t.Helper()

	user, err := NewUserService(db).CreateUser("Test User", email, "password1", "")
	require.NoError(t, err)
	return user
}
