// Package session holds the authenticated user's identity and bearer token
// in durable storage so the session survives restarts.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
)

// The two storage keys, file-per-key under the state directory
const (
	tokenFile = "auth_token"
	userFile  = "user.json"
)

// Session is the current credentials pair
type Session struct {
	User  *model.User
	Token string
}

// Store persists the session. A corrupt or missing user record reads as
// logged-out; it never surfaces as an error to callers.
type Store struct {
	mu    sync.RWMutex
	dir   string
	token string
	user  *model.User
}

// Open loads any persisted session from the state directory
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &Store{dir: dir}
	s.load()
	return s, nil
}

func (s *Store) load() {
	if b, err := os.ReadFile(filepath.Join(s.dir, tokenFile)); err == nil {
		s.token = strings.TrimSpace(string(b))
	}

	b, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return
	}
	var u model.User
	if err := json.Unmarshal(b, &u); err != nil {
		// Corrupt record is treated as absent
		return
	}
	s.user = &u
}

// SetUser stores the credentials of a fresh login
func (s *Store) SetUser(user *model.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), data, 0o600); err != nil {
		return err
	}

	s.token = token
	s.user = user
	return nil
}

// Clear destroys the stored session
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	os.Remove(filepath.Join(s.dir, tokenFile))
	os.Remove(filepath.Join(s.dir, userFile))
	s.token = ""
	s.user = nil
}

// IsAuthenticated reports whether both a token and a parsable user record
// are present
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Current returns the session, or nil when logged out
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" || s.user == nil {
		return nil
	}
	u := *s.user
	return &Session{User: &u, Token: s.token}
}

// Token returns the bearer token, empty when logged out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
