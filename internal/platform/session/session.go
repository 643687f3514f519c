// Package session holds the bearer credential every API call carries.
// The token lives in a file between runs; components receive a Store
// explicitly instead of reading shared global state.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/selfcare/selfcare/internal/platform/apperr"
)

// ErrNotAuthenticated is wrapped into the auth error returned when no
// credential is available.
var ErrNotAuthenticated = errors.New("not authenticated")

// Store loads and saves the bearer token.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token returns the saved credential. Absence short-circuits with a
// "please authenticate" failure before any network attempt is made.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", apperr.Auth("please log in first", ErrNotAuthenticated)
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", apperr.Auth("please log in first", ErrNotAuthenticated)
	}
	return tok, nil
}

// Save persists the credential, creating the parent directory if needed.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the saved credential.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Expired inspects the token's exp claim without verifying the signature;
// verification is the backend's job. Tokens that don't parse or carry no
// expiry are reported as not expired and left for the server to reject.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now)
}
