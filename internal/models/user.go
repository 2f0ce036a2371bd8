package models

import "time"

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	Bio          string    `json:"bio"`
	Github       string    `json:"github"`
	Linkedin     string    `json:"linkedin"`
	Portfolio    string    `json:"portfolio"`
	ContactEmail string    `json:"contactEmail"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SafeUser is the client-facing projection of a User. It never carries the
// password hash, and contactEmail falls back to the account email when unset.
type SafeUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio"`
	Github       string    `json:"github"`
	Linkedin     string    `json:"linkedin"`
	Portfolio    string    `json:"portfolio"`
	ContactEmail string    `json:"contactEmail"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Safe returns the client-facing projection of the user.
func (u User) Safe() SafeUser {
	contactEmail := u.ContactEmail
	if contactEmail == "" {
		contactEmail = u.Email
	}
	return SafeUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Bio:          u.Bio,
		Github:       u.Github,
		Linkedin:     u.Linkedin,
		Portfolio:    u.Portfolio,
		ContactEmail: contactEmail,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
