package credentials

import (
	"context"
	"sync"

	"github.com/schoolhub/portal/internal/models"
)

// MemoryStore keeps credentials in memory only. Sessions do not survive a
// restart; useful for tests and ephemeral logins.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  *models.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token retrieves the stored bearer token.
func (s *MemoryStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// SetToken stores the bearer token.
func (s *MemoryStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// User retrieves the last-known user record.
func (s *MemoryStore) User(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, nil
}

// SetUser stores the user record.
func (s *MemoryStore) SetUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return nil
}

// Clear removes all stored state.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}
