// Package tokenstore keeps the bearer token of the current session.
//
// A Store holds exactly one token slot for one API origin. The value is
// cached in memory and mirrored to a durable Backend so that it survives a
// restart of the client. Backend failures never reach callers: the store keeps
// working from memory and logs that the session will not be remembered.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

// TokenKey is the single durable key holding the bearer token.
const TokenKey = "access_token"

// Backend is durable storage for the token slot. Load returns "" when no
// token is stored; Delete on an empty slot is not an error.
type Backend interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

type Store struct {
	mu      sync.RWMutex
	token   string
	backend Backend
	log     logging.Logger
}

// New creates a store and loads the remembered token from backend. A nil
// backend gives a memory-only store.
func New(ctx context.Context, backend Backend, log logging.Logger) *Store {
	s := &Store{backend: backend, log: log}
	if backend == nil {
		return s
	}

	token, err := backend.Load(ctx)
	if err != nil {
		log.Warn(ctx, "token storage unavailable, starting without a remembered session", "error", err)
		return s
	}
	s.token = token
	return s
}

// Get returns the current token and whether one is present.
func (s *Store) Get(_ context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Set replaces the token.
func (s *Store) Set(ctx context.Context, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	if s.backend == nil {
		return
	}
	if err := s.backend.Save(ctx, token); err != nil {
		s.log.Warn(ctx, "token not persisted, session will not be remembered across restart", "error", err)
	}
}

// Clear empties the slot. It is safe to call any number of times.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if s.backend == nil {
		return
	}
	if err := s.backend.Delete(ctx); err != nil {
		s.log.Warn(ctx, "stored token not removed", "error", err)
	}
}

// Scope returns the origin (scheme://host[:port]) of an API base URL. Tokens
// are stored per origin.
func Scope(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("base url must be absolute")
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host), nil
}
