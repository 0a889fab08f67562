package session

import (
	"github.com/dmitrijs2005/moodjournal/internal/client/models"
)

type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
	// Degraded is authenticated without a real profile: the profile fetch
	// failed or the session was restored from a stored token.
	Degraded
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Degraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of the authentication state.
type Session struct {
	Token   string
	User    *models.User
	Loading bool
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

func (s Session) State() State {
	switch {
	case s.Loading:
		return Authenticating
	case s.Token == "":
		return Anonymous
	case s.User == nil || s.User.ID == 0:
		return Degraded
	default:
		return Authenticated
	}
}
