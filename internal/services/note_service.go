package services

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard-be/internal/models"
)

// NoteUpdate carries a partial note change. Nil fields are left untouched;
// a non-nil Tags replaces the whole list.
type NoteUpdate struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// NoteServiceProvider defines the interface for note services.
type NoteServiceProvider interface {
	ListNotes(ownerID string) ([]models.Note, error)
	CreateNote(ownerID, title, content string, tags []string) (models.Note, error)
	UpdateNote(ownerID, id string, update NoteUpdate) (models.Note, error)
	DeleteNote(ownerID, id string) error
}

// NoteService provides business logic for note management. Every query is
// owner-scoped.
type NoteService struct {
	db *sql.DB
}

// NewNoteService creates a new NoteService.
func NewNoteService(db *sql.DB) *NoteService {
	return &NoteService{db: db}
}

const noteColumns = "id, owner_id, title, content, tags_json, created_at, updated_at"

// ListNotes retrieves the owner's notes, most recently updated first.
func (s *NoteService) ListNotes(ownerID string) ([]models.Note, error) {
	rows, err := s.db.Query("SELECT "+noteColumns+" FROM notes WHERE owner_id = ? ORDER BY updated_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var note models.Note
		var tagsJSON string
		err := rows.Scan(&note.ID, &note.Owner, &note.Title, &note.Content,
			&tagsJSON, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &note.Tags); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// GetNoteByID retrieves a single note owned by the caller.
func (s *NoteService) GetNoteByID(ownerID, id string) (models.Note, error) {
	row := s.db.QueryRow("SELECT "+noteColumns+" FROM notes WHERE id = ? AND owner_id = ?", id, ownerID)
	var note models.Note
	var tagsJSON string
	err := row.Scan(&note.ID, &note.Owner, &note.Title, &note.Content,
		&tagsJSON, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Note{}, ErrNotFound
		}
		return models.Note{}, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &note.Tags); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// CreateNote creates a new note for the owner.
func (s *NoteService) CreateNote(ownerID, title, content string, tags []string) (models.Note, error) {
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return models.Note{}, err
	}

	now := time.Now().UTC()
	note := models.Note{
		ID:        uuid.New().String(),
		Owner:     ownerID,
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stmt, err := s.db.Prepare("INSERT INTO notes(id, owner_id, title, content, tags_json, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Note{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(note.ID, note.Owner, note.Title, note.Content, string(tagsJSON), note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// UpdateNote applies a partial change to a note owned by the caller and
// returns the updated record.
func (s *NoteService) UpdateNote(ownerID, id string, update NoteUpdate) (models.Note, error) {
	note, err := s.GetNoteByID(ownerID, id)
	if err != nil {
		return models.Note{}, err
	}

	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	if update.Tags != nil {
		note.Tags = *update.Tags
	}
	note.UpdatedAt = time.Now().UTC()

	tagsJSON, err := json.Marshal(note.Tags)
	if err != nil {
		return models.Note{}, err
	}

	_, err = s.db.Exec(
		"UPDATE notes SET title = ?, content = ?, tags_json = ?, updated_at = ? WHERE id = ? AND owner_id = ?",
		note.Title, note.Content, string(tagsJSON), note.UpdatedAt, id, ownerID,
	)
	if err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// DeleteNote removes a note owned by the caller.
func (s *NoteService) DeleteNote(ownerID, id string) error {
	result, err := s.db.Exec("DELETE FROM notes WHERE id = ? AND owner_id = ?", id, ownerID)
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
