// Package session holds the console-wide session state: the current token
// and the cached user projection, persisted to a single JSON record so the
// session survives a process restart.
package session

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ddg-console/internal/session/domain"
	"ddg-console/internal/token"
)

// Store is the only cross-component shared state in the console. Every
// mutation replaces the session whole and is flushed to the backing file;
// reads never observe a half-updated session. Created once at process start
// and passed explicitly to collaborators.
type Store struct {
	mu   sync.RWMutex
	path string
	s    domain.Session
	nowF func() time.Time
}

// NewStore returns a Store backed by the JSON file at path, rehydrated from
// it if it exists. A missing or unreadable file starts an empty (logged-out)
// session rather than failing: durable state here is a convenience, not a
// source of truth the backend can't re-establish.
func NewStore(path string) *Store {
	s := &Store{path: path, nowF: time.Now}
	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("session: ignoring unreadable state file %s: %v", path, err)
		}
		return s
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		log.Printf("session: ignoring corrupt state file %s: %v", path, err)
		return s
	}
	s.s = sess
	return s
}

// SetAuth replaces the stored token unconditionally. It does not validate
// expiry and does not touch the user projection; callers hydrate the role
// separately.
func (s *Store) SetAuth(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Token = tok
	s.persistLocked()
}

// SetUser replaces the cached user projection after a profile fetch.
func (s *Store) SetUser(u domain.UserProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.User = &u
	s.persistLocked()
}

// Logout clears token and user together. Idempotent: clearing an already
// cleared session leaves the same state.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s = domain.Session{}
	s.persistLocked()
}

// Token returns the current token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.s.Token
}

// User returns a copy of the cached user projection and true, or false when
// the role has not been hydrated.
func (s *Store) User() (domain.UserProjection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.s.User == nil {
		return domain.UserProjection{}, false
	}
	return *s.s.User, true
}

// IsAuthenticated reports whether a token is present and unexpired. The
// check is evaluated fresh on every call; nothing is cached, since the token
// may be replaced at any time.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	tok := s.s.Token
	s.mu.RUnlock()
	return tok != "" && !token.IsExpired(tok, s.nowF())
}

// persistLocked writes the session to the backing file. Best-effort: a write
// failure is logged and does not affect the caller, matching the store's
// role as a reload convenience.
func (s *Store) persistLocked() {
	if s.path == "" {
		return
	}
	b, err := json.Marshal(s.s)
	if err != nil {
		log.Printf("session: marshal state: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		log.Printf("session: create state dir: %v", err)
		return
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		log.Printf("session: write state file %s: %v", s.path, err)
	}
}
