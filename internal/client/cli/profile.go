package cli

import (
	"fmt"
)

// ShowProfile fetches and prints the profile, refreshing the session cache.
func (a *App) ShowProfile() error {
	user, err := a.api.GetProfile()
	if err != nil {
		return err
	}
	_ = a.session.SetUser(user)

	fmt.Fprintf(a.out, "Name:          %s\n", user.Name)
	fmt.Fprintf(a.out, "Email:         %s\n", user.Email)
	fmt.Fprintf(a.out, "Bio:           %s\n", user.Bio)
	fmt.Fprintf(a.out, "GitHub:        %s\n", user.Github)
	fmt.Fprintf(a.out, "LinkedIn:      %s\n", user.Linkedin)
	fmt.Fprintf(a.out, "Portfolio:     %s\n", user.Portfolio)
	fmt.Fprintf(a.out, "Contact email: %s\n", user.ContactEmail)
	return nil
}

// EditProfile prompts for profile fields and sends a partial update. Blank
// input leaves a field unchanged; a single "-" clears it.
func (a *App) EditProfile() error {
	fields := map[string]interface{}{}

	prompts := []struct {
		label string
		key   string
	}{
		{"Name", "name"},
		{"Bio", "bio"},
		{"GitHub URL", "github"},
		{"LinkedIn URL", "linkedin"},
		{"Portfolio URL", "portfolio"},
		{"Contact email", "contactEmail"},
	}
	for _, p := range prompts {
		value, err := getSimpleText(a.reader, p.label+" (blank=keep, -=clear)", a.out)
		if err != nil {
			return err
		}
		switch value {
		case "":
			// keep
		case "-":
			fields[p.key] = ""
		default:
			fields[p.key] = value
		}
	}

	if len(fields) == 0 {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	user, err := a.api.UpdateProfile(fields)
	if err != nil {
		return err
	}
	_ = a.session.SetUser(user)
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

// ChangePassword prompts for the current and new passwords.
func (a *App) ChangePassword() error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}

	if err := a.api.ChangePassword(current, next); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password updated")
	return nil
}
