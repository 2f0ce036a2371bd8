package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard-be/internal/models"
)

// TaskFilter narrows a task listing. Empty fields are ignored; search is a
// case-insensitive substring match against title or description, combined
// with the exact-match filters.
type TaskFilter struct {
	Search   string
	Status   string
	Priority string
}

// TaskUpdate carries a partial task change. Nil fields are left untouched.
// ClearDueDate marks an explicit null, which removes the due date; DueDate
// non-nil sets a new one.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	DueDate      *time.Time
	ClearDueDate bool
}

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	ListTasks(ownerID string, filter TaskFilter) ([]models.Task, error)
	CreateTask(ownerID, title, description, status, priority string, dueDate *time.Time) (models.Task, error)
	UpdateTask(ownerID, id string, update TaskUpdate) (models.Task, error)
	DeleteTask(ownerID, id string) error
}

// TaskService provides business logic for task management. Every query is
// owner-scoped: records belonging to other users are invisible.
type TaskService struct {
	db *sql.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

const taskColumns = "id, owner_id, title, description, status, priority, due_date, created_at, updated_at"

// ListTasks retrieves the owner's tasks, newest first.
func (s *TaskService) ListTasks(ownerID string, filter TaskFilter) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE owner_id = ?"
	args := []interface{}{ownerID}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		query += " AND priority = ?"
		args = append(args, filter.Priority)
	}
	if filter.Search != "" {
		query += " AND (LOWER(title) LIKE '%' || LOWER(?) || '%' OR LOWER(description) LIKE '%' || LOWER(?) || '%')"
		args = append(args, filter.Search, filter.Search)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// GetTaskByID retrieves a single task owned by the caller.
func (s *TaskService) GetTaskByID(ownerID, id string) (models.Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	var task models.Task
	var dueDate sql.NullTime
	err := row.Scan(&task.ID, &task.Owner, &task.Title, &task.Description,
		&task.Status, &task.Priority, &dueDate, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, err
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}
	return task, nil
}

// CreateTask creates a new task for the owner. Status and priority default
// to todo/medium when absent.
func (s *TaskService) CreateTask(ownerID, title, description, status, priority string, dueDate *time.Time) (models.Task, error) {
	if status == "" {
		status = models.TaskStatusTodo
	}
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:          uuid.New().String(),
		Owner:       ownerID,
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stmt, err := s.db.Prepare("INSERT INTO tasks(id, owner_id, title, description, status, priority, due_date, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Task{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(task.ID, task.Owner, task.Title, task.Description,
		task.Status, task.Priority, nullableTime(task.DueDate), task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask applies a partial change to a task owned by the caller and
// returns the updated record.
func (s *TaskService) UpdateTask(ownerID, id string, update TaskUpdate) (models.Task, error) {
	task, err := s.GetTaskByID(ownerID, id)
	if err != nil {
		return models.Task{}, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.ClearDueDate {
		task.DueDate = nil
	} else if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	_, err = s.db.Exec(
		"UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, updated_at = ? WHERE id = ? AND owner_id = ?",
		task.Title, task.Description, task.Status, task.Priority,
		nullableTime(task.DueDate), task.UpdatedAt, id, ownerID,
	)
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task owned by the caller.
func (s *TaskService) DeleteTask(ownerID, id string) error {
	result, err := s.db.Exec("DELETE FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(rows *sql.Rows) (models.Task, error) {
	var task models.Task
	var dueDate sql.NullTime
	err := rows.Scan(&task.ID, &task.Owner, &task.Title, &task.Description,
		&task.Status, &task.Priority, &dueDate, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}
	return task, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
