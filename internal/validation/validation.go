package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// messages maps "<Field>.<tag>" to the user-facing text for that rule.
// Only the first violated rule is ever reported; validator/v10 walks struct
// fields in declaration order, so error ordering follows the payload struct.
var messages = map[string]string{
	"Name.required":            "Name is required",
	"Name.min":                 "Name is required",
	"Email.required":           "Valid email required",
	"Email.email":              "Valid email required",
	"Password.required":        "Password must be at least 6 characters",
	"Password.min":             "Password must be at least 6 characters",
	"Bio.max":                  "Bio must be at most 240 characters",
	"Github.url":               "Valid URL required",
	"Linkedin.url":             "Valid URL required",
	"Portfolio.url":            "Valid URL required",
	"ContactEmail.email":       "Valid email required",
	"CurrentPassword.required": "Current password is required",
	"NewPassword.required":     "New password must be at least 6 characters",
	"NewPassword.min":          "New password must be at least 6 characters",
	"Title.required":           "Title is required",
	"Title.min":                "Title is required",
	"Description.max":          "Description must be at most 500 characters",
	"Content.max":              "Content must be at most 2000 characters",
	"Status.oneof":             "Invalid status",
	"Priority.oneof":           "Invalid priority",
}

// Check validates a payload struct against its constraint tags and returns
// an error carrying only the first violation's message.
func Check(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.New("Invalid request")
	}

	first := verrs[0]
	if msg, ok := messages[first.Field()+"."+first.Tag()]; ok {
		return errors.New(msg)
	}
	return fmt.Errorf("%s is invalid", first.Field())
}
