package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ProfileUpdate carries a partial profile change. Nil fields are left
// untouched; an empty string is a valid explicit clear for the optional
// URL/email fields.
type ProfileUpdate struct {
	Name         *string
	Bio          *string
	Github       *string
	Linkedin     *string
	Portfolio    *string
	ContactEmail *string
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(name, email, password, bio string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	UpdateProfile(id string, update ProfileUpdate) (models.User, error)
	UpdatePassword(id, currentPassword, newPassword string) error
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

const userColumns = "id, name, email, password_hash, bio, github, linkedin, portfolio, contact_email, created_at, updated_at"

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Bio, &user.Github, &user.Linkedin, &user.Portfolio,
		&user.ContactEmail, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", normalizeEmail(email))
	return scanUser(row)
}

// CreateUser creates a new user, hashing their password. The email is
// case-folded before the uniqueness check so addresses differing only in
// case collide.
func (s *UserService) CreateUser(name, email, password, bio string) (models.User, error) {
	email = normalizeEmail(email)

	var exists int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&exists)
	if err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Bio:          bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, name, email, password_hash, bio, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Name, user.Email, user.PasswordHash, user.Bio, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies a user's credentials. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile applies a partial profile change and returns the updated
// user. An empty name is ignored rather than applied.
func (s *UserService) UpdateProfile(id string, update ProfileUpdate) (models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	if update.Name != nil && *update.Name != "" {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Github != nil {
		user.Github = *update.Github
	}
	if update.Linkedin != nil {
		user.Linkedin = *update.Linkedin
	}
	if update.Portfolio != nil {
		user.Portfolio = *update.Portfolio
	}
	if update.ContactEmail != nil {
		user.ContactEmail = *update.ContactEmail
	}
	user.UpdatedAt = time.Now().UTC()

	_, err = s.db.Exec(
		"UPDATE users SET name = ?, bio = ?, github = ?, linkedin = ?, portfolio = ?, contact_email = ?, updated_at = ? WHERE id = ?",
		user.Name, user.Bio, user.Github, user.Linkedin, user.Portfolio, user.ContactEmail, user.UpdatedAt, id,
	)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdatePassword verifies the current password, then hashes and sets a new
// password for a user. The stored hash is untouched when verification fails.
func (s *UserService) UpdatePassword(id, currentPassword, newPassword string) error {
	var passwordHash string
	err := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id).Scan(&passwordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		string(hashedPassword), time.Now().UTC(), id)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
