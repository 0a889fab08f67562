package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/moodjournal/internal/client/apiclient"
	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

var (
	// ErrAuthInProgress is returned when login or signup is attempted while
	// another one is still running.
	ErrAuthInProgress = errors.New("authentication already in progress")
	// ErrSessionEnded is returned when the session was logged out while a
	// login or signup was completing.
	ErrSessionEnded = errors.New("session ended during authentication")
)

// Authenticator is the subset of services.AuthAPI the manager drives.
type Authenticator interface {
	Signup(ctx context.Context, email, username, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*models.User, error)
}

type TokenStore interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, token string)
	Clear(ctx context.Context)
}

type Manager struct {
	auth   Authenticator
	tokens TokenStore
	log    logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	session Session
	// generation changes whenever the token is replaced or dropped, so a
	// completing login can tell whether its token is still current.
	generation uint64
	subs       map[int]chan Session
	nextSub    int

	forced chan struct{}
}

func NewManager(auth Authenticator, tokens TokenStore, log logging.Logger) *Manager {
	return &Manager{
		auth:   auth,
		tokens: tokens,
		log:    log,
		now:    time.Now,
		subs:   make(map[int]chan Session),
		forced: make(chan struct{}, 1),
	}
}

// Restore initialises the session from the token store. The profile is not
// fetched: a restored session stays Degraded until the next login.
func (m *Manager) Restore(ctx context.Context) Session {
	token, _ := m.tokens.Get(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{Token: token, Loading: m.session.Loading}
	m.generation++
	m.publishLocked()

	if token != "" {
		m.log.Info(ctx, "session restored", "sub", subject(token))
	}
	return m.session
}

func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// IsAuthenticated reports whether a token is present, regardless of the
// profile or loading flag.
func (m *Manager) IsAuthenticated() bool {
	return m.Snapshot().Authenticated()
}

// Login authenticates with email and password, stores the token and loads
// the profile. A failed login leaves the previous session untouched. A
// failed profile load is tolerated with a placeholder user.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, "login", func(ctx context.Context) (string, error) {
		return m.auth.Login(ctx, email, password)
	}, models.User{Email: email})
}

// Signup creates the account and continues exactly like Login.
func (m *Manager) Signup(ctx context.Context, email, username, password string) error {
	return m.authenticate(ctx, "signup", func(ctx context.Context) (string, error) {
		return m.auth.Signup(ctx, email, username, password)
	}, models.User{Email: email, Username: username})
}

func (m *Manager) authenticate(ctx context.Context, op string, call func(context.Context) (string, error), placeholder models.User) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.finish()

	log := m.log.With("op", op, "email", placeholder.Email)

	token, err := call(ctx)
	if err != nil {
		log.Info(ctx, "authentication rejected", "error", err)
		return err
	}

	gen := m.persist(ctx, token)
	log = log.With("sub", subject(token))

	user, err := m.auth.Me(ctx)
	if errors.Is(err, apiclient.ErrUnauthorized) {
		log.Warn(ctx, "fresh token rejected while loading profile")
		if m.isGeneration(gen) {
			m.HandleUnauthorized(ctx)
		}
		return fmt.Errorf("%s: load profile: %w", op, err)
	}
	if err != nil {
		log.Warn(ctx, "profile unavailable, using placeholder", "error", err)
		placeholder.ID = 0
		placeholder.CreatedAt = models.NewTimestamp(m.now())
		user = &placeholder
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != gen {
		log.Warn(ctx, "session changed while loading profile, discarding result")
		return fmt.Errorf("%s: %w", op, ErrSessionEnded)
	}
	m.session.User = user
	log.Info(ctx, "session established", "user_id", user.ID)
	return nil
}

func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Loading {
		return ErrAuthInProgress
	}
	m.session.Loading = true
	m.publishLocked()
	return nil
}

func (m *Manager) finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Loading = false
	m.publishLocked()
}

// persist installs a new token in the store and the session and returns the
// generation it belongs to.
func (m *Manager) persist(ctx context.Context, token string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens.Set(ctx, token)
	m.session.Token = token
	m.session.User = nil
	m.generation++
	return m.generation
}

func (m *Manager) isGeneration(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation == gen
}

// Logout drops the session. It never fails and may be called repeatedly.
func (m *Manager) Logout(ctx context.Context) {
	if sub := m.drop(ctx); sub != "" {
		m.log.Info(ctx, "logged out", "sub", sub)
	}
}

// HandleUnauthorized is the forced logout run when the backend rejects the
// token. It drops the session like Logout and signals ForcedLogouts.
func (m *Manager) HandleUnauthorized(ctx context.Context) {
	sub := m.drop(ctx)
	m.log.Warn(ctx, "forced logout", "sub", sub)

	select {
	case m.forced <- struct{}{}:
	default:
	}
}

// drop clears the store and the session and returns the subject of the
// token that was dropped, if any.
func (m *Manager) drop(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens.Clear(ctx)

	sub := subject(m.session.Token)
	m.session = Session{Loading: m.session.Loading}
	m.generation++
	m.publishLocked()
	return sub
}

// ForcedLogouts delivers one value per burst of forced logouts. Values that
// are not consumed coalesce.
func (m *Manager) ForcedLogouts() <-chan struct{} {
	return m.forced
}

// Subscribe returns a channel carrying the latest session after every
// change, starting with the current one. A slow reader only misses
// intermediate states. cancel stops delivery and closes the channel.
func (m *Manager) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- m.session
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			close(ch)
			m.mu.Unlock()
		})
	}
	return ch, cancel
}

func (m *Manager) publishLocked() {
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- m.session:
		default:
		}
	}
}

// subject returns the sub claim of token for log correlation. The token is
// not verified; the client has no key and the value is informational.
func subject(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
