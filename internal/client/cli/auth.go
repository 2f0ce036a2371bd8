package cli

import (
	"fmt"
)

// Register prompts for account details and creates a new account. On
// success the issued token and user are stored in the session, so the user
// is logged in immediately.
func (a *App) Register() error {
	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	bio, err := getSimpleText(a.reader, "Bio (optional)", a.out)
	if err != nil {
		return err
	}

	resp, err := a.api.Register(name, email, password, bio)
	if err != nil {
		return err
	}

	a.api.SetToken(resp.Token)
	if err := a.session.SetAuthenticated(resp.Token, resp.User); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered as %s\n", resp.User.Email)
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login() error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}

	resp, err := a.api.Login(email, password)
	if err != nil {
		return err
	}

	a.api.SetToken(resp.Token)
	if err := a.session.SetAuthenticated(resp.Token, resp.User); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", resp.User.Email)
	return nil
}

// Logout drops the session locally. The token itself is not revoked
// server-side; it expires passively.
func (a *App) Logout() error {
	a.api.ClearToken()
	if err := a.session.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Whoami prints the cached identity.
func (a *App) Whoami() error {
	sess := a.session.Current()
	if !sess.Authenticated() || sess.User == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}
