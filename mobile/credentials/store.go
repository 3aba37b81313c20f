// Package credentials persists the bearer token and last-known user record
// across process restarts. It holds no business logic; the session layer owns
// all writes.
package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/schoolhub/portal/internal/models"
)

// Store is the interface that wraps persisted session state access.
type Store interface {
	// Method Token retrieves the stored bearer token.
	//
	// An empty string with a nil error means no token is stored.
	Token(ctx context.Context) (string, error)
	// Method SetToken stores the bearer token, replacing any previous one.
	SetToken(ctx context.Context, token string) error
	// Method User retrieves the last-known user record.
	//
	// A nil user with a nil error means no user is stored.
	User(ctx context.Context) (*models.User, error)
	// Method SetUser stores the user record, replacing any previous one.
	SetUser(ctx context.Context, user *models.User) error
	// Method Clear removes all stored state. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}

// state is the on-disk shape of the file store.
type state struct {
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

// FileStore keeps credentials in a single JSON file with 0600 permissions.
// Writes replace the file atomically via a temp file and rename.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file store at path. The parent directory is created
// on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token retrieves the stored bearer token.
func (s *FileStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return "", err
	}
	return st.Token, nil
}

// SetToken stores the bearer token.
func (s *FileStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return err
	}
	st.Token = token
	return s.save(st)
}

// User retrieves the last-known user record.
func (s *FileStore) User(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return nil, err
	}
	return st.User, nil
}

// SetUser stores the user record.
func (s *FileStore) SetUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		return err
	}
	st.User = user
	return s.save(st)
}

// Clear removes the credentials file.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// load reads the current state; a missing file yields an empty state.
func (s *FileStore) load() (*state, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &state{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	st := &state{}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return st, nil
}

// save writes the state atomically.
func (s *FileStore) save(st *state) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("failed to create temp credentials file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set credentials permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close credentials file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace credentials file: %w", err)
	}
	return nil
}
