// Package router tracks which screen the client is on and keeps
// unauthenticated users out of protected screens.
package router

import (
	"fmt"
	"strconv"
	"strings"
)

// Route is a concrete screen path such as "/journal" or "/entry/3".
type Route string

const (
	Login     Route = "/login"
	Signup    Route = "/signup"
	Dashboard Route = "/"
	Journal   Route = "/journal"
	Analytics Route = "/analytics"

	entryPrefix = "/entry/"
)

// Entry returns the detail route of entry id.
func Entry(id int64) Route {
	return Route(fmt.Sprintf("%s%d", entryPrefix, id))
}

// EntryID extracts the id from an entry detail route.
func (r Route) EntryID() (int64, bool) {
	rest, ok := strings.CutPrefix(string(r), entryPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Known reports whether r is one of the client's screens.
func (r Route) Known() bool {
	switch r {
	case Login, Signup, Dashboard, Journal, Analytics:
		return true
	}
	_, ok := r.EntryID()
	return ok
}

// Public reports whether r can be shown without a session.
func (r Route) Public() bool {
	return r == Login || r == Signup
}

// Protected reports whether r requires a session. Unknown routes are
// treated as protected.
func (r Route) Protected() bool {
	return !r.Public()
}

func (r Route) String() string {
	return string(r)
}

// Guard decides where a navigation to target actually lands.
func Guard(authenticated bool, target Route) Route {
	if target.Protected() && !authenticated {
		return Login
	}
	return target
}
