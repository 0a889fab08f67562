package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/client/router"
	"github.com/dmitrijs2005/moodjournal/internal/client/services"
	"github.com/dmitrijs2005/moodjournal/internal/client/session"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Sessions is the part of *session.Manager the CLI drives.
type Sessions interface {
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, email, username, password string) error
	Logout(ctx context.Context)
	Snapshot() session.Session
	IsAuthenticated() bool
}

// Pinger probes backend liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators an App is built from.
type Deps struct {
	Sessions  Sessions
	Router    *router.Router
	Entries   services.EntryService
	Agent     services.AgentService
	Analytics services.AnalyticsService
	Pinger    Pinger
	Logger    logging.Logger

	OnlineCheckInterval time.Duration
	In                  io.Reader
	Out                 io.Writer
}

type App struct {
	sessions  Sessions
	router    *router.Router
	entries   services.EntryService
	agent     services.AgentService
	analytics services.AnalyticsService
	views     *services.Views
	pinger    Pinger
	log       logging.Logger

	interval time.Duration
	reader   *bufio.Reader
	out      io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(d Deps) *App {
	in, out := d.In, d.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	a := &App{
		sessions:  d.Sessions,
		router:    d.Router,
		entries:   d.Entries,
		agent:     d.Agent,
		analytics: d.Analytics,
		views:     services.NewViews(d.Entries, d.Agent, d.Analytics),
		pinger:    d.Pinger,
		log:       d.Logger,
		interval:  d.OnlineCheckInterval,
		reader:    bufio.NewReader(in),
		out:       out,
	}
	a.router.OnForcedLogout(func(from router.Route) {
		printlnFn("Your session has expired. Please log in again.")
	})
	return a
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Run starts the background watchers and blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to moodjournal CLI (type 'help' for commands)")
	a.checkOnline(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.interval)
	go a.router.Run(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}

// syncRoute applies forced logouts that arrived during the last command.
func (a *App) syncRoute(ctx context.Context) {
	a.router.Sync(ctx)
}

// getStatus renders the prompt status: who is logged in, connectivity and
// the current screen.
func (a *App) getStatus() string {
	var parts []string
	if s := a.sessions.Snapshot(); s.Authenticated() {
		parts = append(parts, displayName(s))
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	parts = append(parts, a.router.Current().String())
	return "(" + strings.Join(parts, " ") + ")"
}

// StartOnlineStatusWatcher probes the backend every interval and updates the
// connectivity mode until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.pinger.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// enter navigates to target and reports whether the user may proceed. It
// tells the user to log in when the router redirected.
func (a *App) enter(ctx context.Context, target router.Route) bool {
	landed, err := a.router.Navigate(ctx, target)
	if err != nil {
		printlnFn("Error:", err)
		return false
	}
	if landed != target {
		printlnFn("Please log in first.")
		return false
	}
	return true
}

func (a *App) navigate(ctx context.Context, target router.Route) {
	_, _ = a.router.Navigate(ctx, target)
}
