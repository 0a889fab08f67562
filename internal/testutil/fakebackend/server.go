package fakebackend

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	naiveLayout = "2006-01-02T15:04:05.999999"
	tokenTTL    = 60 * time.Minute
	ctxUserID   = "user_id"
)

// Request is what the server saw of one incoming request.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

type user struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

type entry struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	Sentiment float64
	Keywords  string
	MoodLevel int
	CreatedAt time.Time
}

type followup struct {
	ID        int64
	EntryID   int64
	Prompt    string
	CreatedAt time.Time
}

type failure struct {
	status int
	detail string
	times  int // <= 0 means until cleared
}

type Server struct {
	*httptest.Server
	echo *echo.Echo

	mu        sync.Mutex
	secret    []byte
	nextID    int64
	users     map[int64]*user
	entries   map[int64]*entry
	followups []*followup
	failures  map[string]*failure
	requests  []Request
}

// New starts a fake backend. Call Close when done.
func New() *Server {
	s := &Server{
		secret:   []byte("fake-backend-secret"),
		users:    map[int64]*user{},
		entries:  map[int64]*entry{},
		failures: map[string]*failure{},
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.record, s.inject)

	e.GET("/health", s.health)

	api := e.Group("/api")
	api.POST("/auth/signup", s.signup)
	api.POST("/auth/login", s.login)

	authed := api.Group("", s.requireAuth)
	authed.GET("/auth/me", s.me)
	authed.POST("/entries/", s.createEntry)
	authed.GET("/entries/", s.listEntries)
	authed.GET("/entries/:id", s.getEntry)
	authed.PUT("/entries/:id", s.updateEntry)
	authed.DELETE("/entries/:id", s.deleteEntry)
	authed.POST("/agent/followup", s.requestFollowup)
	authed.GET("/agent/followups/:id", s.listFollowups)
	authed.GET("/agent/companion/:id", s.companion)
	authed.GET("/agent/patterns", s.patterns)
	authed.GET("/analytics/summary", s.summary)
	authed.GET("/analytics/trends", s.trends)

	s.echo = e
	s.Server = httptest.NewServer(e)
	return s
}

// APIURL is the base URL clients should be configured with.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

// Fail makes the next times requests to method+path answer status with
// detail. times <= 0 fails until ClearFailures.
func (s *Server) Fail(method, path string, status int, detail string, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = &failure{status: status, detail: detail, times: times}
}

func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]*failure{}
}

// RevokeTokens invalidates every token issued so far.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = append(s.secret, 'x')
}

// IssueToken returns a valid token for the user with email, as login would.
func (s *Server) IssueToken(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return s.issueLocked(u.ID)
		}
	}
	return "", fmt.Errorf("no user %s", email)
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request to method+path.
func (s *Server) LastRequest(method, path string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if r := s.requests[i]; r.Method == method && r.Path == path {
			return r, true
		}
	}
	return Request{}, false
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        req.Method,
			Path:          req.URL.Path,
			Authorization: req.Header.Get(echo.HeaderAuthorization),
			RequestID:     req.Header.Get(echo.HeaderXRequestID),
		})
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) inject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Method + " " + c.Request().URL.Path

		s.mu.Lock()
		f, ok := s.failures[key]
		if ok && f.times > 0 {
			f.times--
			if f.times == 0 {
				delete(s.failures, key)
			}
		}
		s.mu.Unlock()

		if ok {
			return detail(c, f.status, f.detail)
		}
		return next(c)
	}
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
		if !ok || raw == "" {
			return detail(c, http.StatusUnauthorized, "Not authenticated")
		}

		id, err := s.verify(raw)
		if err != nil {
			return detail(c, http.StatusUnauthorized, "Invalid token")
		}
		c.Set(ctxUserID, id)
		return next(c)
	}
}

func (s *Server) issueLocked(userID int64) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) verify(raw string) (int64, error) {
	s.mu.Lock()
	secret := s.secret
	s.mu.Unlock()

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("bad subject")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return 0, errors.New("unknown user")
	}
	return id, nil
}

func (s *Server) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

func detail(c echo.Context, status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return c.JSON(status, map[string]string{"detail": msg})
}

func naive(t time.Time) string {
	return t.UTC().Format(naiveLayout)
}

func userID(c echo.Context) int64 {
	id, _ := c.Get(ctxUserID).(int64)
	return id
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func hashPassword(pw string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
}

func checkPassword(hash []byte, pw string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(pw)) == nil
}
