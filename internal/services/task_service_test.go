package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-be/internal/models"
)

func TestCreateTask_Defaults(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	s := NewTaskService(db)

	task, err := s.CreateTask(owner.ID, "Buy milk", "", "", "", nil)
	require.NoError(t, err)

	assert.Equal(t, models.TaskStatusTodo, task.Status)
	assert.Equal(t, models.TaskPriorityMedium, task.Priority)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, owner.ID, task.Owner)
}

func TestListTasks_SortedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	s := NewTaskService(db)

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.CreateTask(owner.ID, title, "", "", "", nil)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}

	tasks, err := s.ListTasks(owner.ID, TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Title)
	assert.Equal(t, "first", tasks[2].Title)
}

func TestListTasks_SearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	s := NewTaskService(db)

	_, err := s.CreateTask(owner.ID, "Buy milk", "", "", "", nil)
	require.NoError(t, err)
	_, err = s.CreateTask(owner.ID, "Read book", "", "", "", nil)
	require.NoError(t, err)

	for _, search := range []string{"milk", "MILK"} {
		tasks, err := s.ListTasks(owner.ID, TaskFilter{Search: search})
		require.NoError(t, err)
		require.Len(t, tasks, 1, "search %q", search)
		assert.Equal(t, "Buy milk", tasks[0].Title)
	}
}

func TestListTasks_SearchMatchesDescription(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	s := NewTaskService(db)

	_, err := s.CreateTask(owner.ID, "Errands", "pick up milk from the store", "", "", nil)
	require.NoError(t, err)

	tasks, err := s.ListTasks(owner.ID, TaskFilter{Search: "Milk"})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestListTasks_FiltersCombineWithAnd(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	s := NewTaskService(db)

	_, err := s.CreateTask(owner.ID, "Buy milk", "", "todo", "high", nil)
	require.NoError(t, err)
	_, err = s.CreateTask(owner.ID, "Buy bread", "", "done", "high", nil)
	require.NoError(t, err)

	tasks, err := s.ListTasks(owner.ID, TaskFilter{Search: "buy", Status: "todo", Priority: "high"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestTasks_OwnerScoped(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	s := NewTaskService(db)

	task, err := s.CreateTask(alice.ID, "Alice's task", "", "", "", nil)
	require.NoError(t, err)

	// Bob never sees Alice's tasks.
	tasks, err := s.ListTasks(bob.ID, TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// Update and delete by Bob behave as if the task does not exist.
	title := "hijacked"
	_, err = s.UpdateTask(bob.ID, task.ID, TaskUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteTask(bob.ID, task.ID), ErrNotFound)

	// Alice's task is intact.
	got, err := s.GetTaskByID(alice.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice's task", got.Title)
}

func TestUpdateTask_PartialSemantics(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	s := NewTaskService(db)

	task, err := s.CreateTask(owner.ID, "X", "", "", "low", nil)
	require.NoError(t, err)

	priority := "high"
	updated, err := s.UpdateTask(owner.ID, task.ID, TaskUpdate{Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Title, "unspecified fields stay unchanged")
	assert.Equal(t, "high", updated.Priority)
}

func TestUpdateTask_DueDateTriState(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	s := NewTaskService(db)

	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task, err := s.CreateTask(owner.ID, "With due date", "", "", "", &due)
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)

	// Omitted due date preserves the prior value.
	title := "Renamed"
	updated, err := s.UpdateTask(owner.ID, task.ID, TaskUpdate{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(due))

	// Explicit null clears it.
	updated, err = s.UpdateTask(owner.ID, task.ID, TaskUpdate{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)

	got, err := s.GetTaskByID(owner.ID, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
}

func TestDeleteTask(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	s := NewTaskService(db)

	task, err := s.CreateTask(owner.ID, "Short-lived", "", "", "", nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(owner.ID, task.ID))
	assert.ErrorIs(t, s.DeleteTask(owner.ID, task.ID), ErrNotFound)

	tasks, err := s.ListTasks(owner.ID, TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
