package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

var ErrUnknownRoute = errors.New("unknown route")

// AuthState reports whether a session is present. *session.Manager
// satisfies it.
type AuthState interface {
	IsAuthenticated() bool
}

type Router struct {
	auth   AuthState
	forced <-chan struct{}
	log    logging.Logger

	mu       sync.Mutex
	current  Route
	onForced func(from Route)
}

// New returns a router positioned on the dashboard, or on the login screen
// when there is no session. forced carries forced-logout signals.
func New(auth AuthState, forced <-chan struct{}, log logging.Logger) *Router {
	return &Router{
		auth:    auth,
		forced:  forced,
		log:     log,
		current: Guard(auth.IsAuthenticated(), Dashboard),
	}
}

// OnForcedLogout registers fn, called with the route that was left after a
// forced logout redirect.
func (r *Router) OnForcedLogout(fn func(from Route)) {
	r.mu.Lock()
	r.onForced = fn
	r.mu.Unlock()
}

func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate moves to target, or to the login screen when target is
// protected and there is no session. It returns where it landed.
func (r *Router) Navigate(ctx context.Context, target Route) (Route, error) {
	if !target.Known() {
		return r.Current(), fmt.Errorf("%w: %s", ErrUnknownRoute, target)
	}

	landed := Guard(r.auth.IsAuthenticated(), target)
	if landed != target {
		r.log.Debug(ctx, "navigation redirected", "target", target, "route", landed)
	}

	r.mu.Lock()
	r.current = landed
	r.mu.Unlock()
	return landed, nil
}

// Sync applies any pending forced logout without blocking and reports
// whether one was applied.
func (r *Router) Sync(ctx context.Context) bool {
	applied := false
	for {
		select {
		case <-r.forced:
			r.redirect(ctx)
			applied = true
		default:
			return applied
		}
	}
}

// Run applies forced logouts as they arrive until ctx is done.
func (r *Router) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.forced:
			r.redirect(ctx)
		}
	}
}

func (r *Router) redirect(ctx context.Context) {
	r.mu.Lock()
	from := r.current
	r.current = Login
	fn := r.onForced
	r.mu.Unlock()

	r.log.Info(ctx, "session expired, redirected to login", "from", from)
	if fn != nil {
		fn(from)
	}
}
