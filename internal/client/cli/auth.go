package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moodjournal/internal/client/router"
	"github.com/dmitrijs2005/moodjournal/internal/client/session"
)

const minPasswordLength = 8

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	errMissingFields    = errors.New("please fill in all fields")
)

// validateSignup applies the signup form rules in the order the user sees
// them reported.
func validateSignup(email, username, password, confirm string) error {
	if password == "" || confirm == "" || password != confirm {
		return errPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return errPasswordTooShort
	}
	if strings.TrimSpace(email) == "" || strings.TrimSpace(username) == "" {
		return errMissingFields
	}
	return nil
}

// Signup prompts for email, username and a confirmed password, creates the
// account and lands on the dashboard.
func (a *App) Signup(ctx context.Context) error {
	a.navigate(ctx, router.Signup)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}

	if err := validateSignup(email, username, string(password), string(confirm)); err != nil {
		printlnFn("Signup failed: " + err.Error())
		return err
	}

	if err := a.sessions.Signup(ctx, strings.TrimSpace(email), strings.TrimSpace(username), string(password)); err != nil {
		return report("Signup failed", err)
	}

	a.navigate(ctx, router.Dashboard)
	printlnFn("Account created! Welcome aboard!")
	return nil
}

// Login prompts for credentials and authenticates. On success the user lands
// on the dashboard; on failure the previous session is left as it was.
func (a *App) Login(ctx context.Context) error {
	a.navigate(ctx, router.Login)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if err := a.sessions.Login(ctx, strings.TrimSpace(email), string(password)); err != nil {
		return report("Login failed", err)
	}

	a.navigate(ctx, router.Dashboard)
	printlnFn("Welcome back, " + displayName(a.sessions.Snapshot()) + "!")
	return nil
}

// Logout drops the session and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.Logout(ctx)
	a.navigate(ctx, router.Login)
	printlnFn("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.sessions.Snapshot()
	switch {
	case !s.Authenticated():
		printlnFn("Not logged in.")
	case s.User == nil:
		printlnFn("Logged in (profile not loaded).")
	case s.User.ID == 0:
		printlnFn("Logged in as " + displayName(s) + " (profile unavailable).")
	default:
		printlnFn(fmt.Sprintf("Logged in as %s <%s>, member since %s.",
			s.User.Username, s.User.Email, s.User.CreatedAt.Format("2006-01-02")))
	}
	return nil
}

func displayName(s session.Session) string {
	switch {
	case s.User == nil:
		return "user"
	case s.User.Username != "":
		return s.User.Username
	case s.User.Email != "":
		return s.User.Email
	default:
		return "user"
	}
}
