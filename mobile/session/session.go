// Package session is the single source of truth for who is acting and as what
// role: the authenticated user, an optional transient role-context override
// for multi-school users, and the derived authenticated/initialized flags.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/schoolhub/portal/internal/models"
	"github.com/schoolhub/portal/mobile/credentials"
	"go.uber.org/zap"
)

// AuthPersistenceError means the token or user record could not be saved or
// loaded. The in-memory session keeps working; it just will not survive a
// restart.
type AuthPersistenceError struct {
	Err error
}

func (e *AuthPersistenceError) Error() string { return "auth state not persisted: " + e.Err.Error() }
func (e *AuthPersistenceError) Unwrap() error { return e.Err }

// Session holds the current identity. It is the only writer of the credential
// store; everything else reads through it.
type Session struct {
	mu     sync.RWMutex
	store  credentials.Store
	logger *zap.Logger

	user        *models.User
	roleContext models.Role
	initialized bool
}

// New creates a session backed by the given credential store.
func New(store credentials.Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		store:  store,
		logger: logger,
	}
}

// Restore loads the persisted token and user record, typically at app start.
// The session is marked initialized either way. A store failure is returned
// as *AuthPersistenceError and leaves the session unauthenticated.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.store.Token(ctx)
	if err == nil {
		var user *models.User
		user, err = s.store.User(ctx)
		if err == nil && token != "" && user != nil {
			s.mu.Lock()
			s.user = user
			s.roleContext = ""
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("failed to restore session", zap.Error(err))
		return &AuthPersistenceError{Err: err}
	}
	return nil
}

// Login stores the token and user record and makes user the current identity,
// clearing any role-context override from a previous session. When the
// credential store fails the in-memory identity is still updated and the
// failure is returned as *AuthPersistenceError so the caller can surface it.
func (s *Session) Login(ctx context.Context, token string, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}

	var persistErr error
	if err := s.store.SetToken(ctx, token); err != nil {
		persistErr = err
	} else if err := s.store.SetUser(ctx, user); err != nil {
		persistErr = err
	}

	u := *user
	s.mu.Lock()
	s.user = &u
	s.roleContext = ""
	s.initialized = true
	s.mu.Unlock()

	if persistErr != nil {
		s.logger.Warn("failed to persist auth state", zap.Error(persistErr))
		return &AuthPersistenceError{Err: persistErr}
	}
	return nil
}

// Logout clears the credential store and the in-memory identity. It is
// idempotent and never fails from the caller's perspective; storage errors
// are logged and swallowed.
func (s *Session) Logout(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("failed to clear credential store on logout", zap.Error(err))
	}

	s.mu.Lock()
	s.user = nil
	s.roleContext = ""
	s.mu.Unlock()
}

// UpdateUser merges the patch into the current user. Without an active user
// it is a no-op.
func (s *Session) UpdateUser(patch models.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	s.user.Apply(patch)
}

// SetRoleContext sets the act-as role override for multi-role users.
func (s *Session) SetRoleContext(role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role context: %q", role)
	}

	s.mu.Lock()
	s.roleContext = role
	s.mu.Unlock()
	return nil
}

// ResetRoleContext clears the act-as override; the user's primary role
// becomes effective again.
func (s *Session) ResetRoleContext() {
	s.mu.Lock()
	s.roleContext = ""
	s.mu.Unlock()
}

// UpdateSchoolContext switches the current school and optionally the role
// context in one step, for users affiliated with several schools. A no-op
// without an active user.
func (s *Session) UpdateSchoolContext(schoolID int64, roleContext models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}

	if s.user.CurrentSchool != nil {
		cs := *s.user.CurrentSchool
		cs.ID = schoolID
		s.user.CurrentSchool = &cs
	} else {
		s.user.CurrentSchool = &models.School{ID: schoolID}
	}

	if roleContext != "" && roleContext.Valid() {
		s.roleContext = roleContext
	}
}

// User returns a copy of the current user, or nil when unauthenticated.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// EffectiveRole returns the role-context override when set, else the user's
// primary role, else "".
func (s *Session) EffectiveRole() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.roleContext != "" {
		return s.roleContext
	}
	if s.user != nil {
		return s.user.Role
	}
	return ""
}

// RoleContext returns the raw override, "" when unset.
func (s *Session) RoleContext() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roleContext
}

// CurrentSchoolID returns the current school's id, 0 when none.
func (s *Session) CurrentSchoolID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil || s.user.CurrentSchool == nil {
		return 0
	}
	return s.user.CurrentSchool.ID
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Initialized reports whether Restore or Login has run.
func (s *Session) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// CheckPermission reports whether the current user holds the permission. The
// user's explicit permission list wins when the server sent one; otherwise
// the effective role's defaults apply. The "all" wildcard grants everything.
func (s *Session) CheckPermission(permission string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return false
	}

	perms := s.user.Permissions
	if len(perms) == 0 {
		role := s.roleContext
		if role == "" {
			role = s.user.Role
		}
		perms = role.DefaultPermissions()
	}

	for _, p := range perms {
		if p == models.PermissionAll || p == permission {
			return true
		}
	}
	return false
}
