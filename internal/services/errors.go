package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP statuses; anything else is treated as a server error.
var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")
)
