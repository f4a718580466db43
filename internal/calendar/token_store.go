package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// TokenStore persists a single OAuth token as one JSON file on disk. The
// token is shared by the whole process; there is no per-user scoping.
type TokenStore struct {
	path string
	mu   sync.RWMutex
}

// NewTokenStore creates a token store backed by the given file path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load reads the stored token. Returns ErrNotConnected when no file exists.
func (s *TokenStore) Load() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotConnected
	}
	if err != nil {
		return nil, fmt.Errorf("calendar: read token file: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("calendar: decode token file: %w", err)
	}
	return &token, nil
}

// Save overwrites the stored token atomically (temp file + rename).
func (s *TokenStore) Save(token *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("calendar: encode token: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("calendar: create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("calendar: write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("calendar: close token file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("calendar: chmod token file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("calendar: replace token file: %w", err)
	}
	return nil
}
