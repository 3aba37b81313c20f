// Package menu maintains the role-scoped navigation tree: a resolver that
// keeps exactly one menu per (effective role, school) key with last-request-
// wins semantics, and the pure filter that derives the navigable entries.
package menu

import (
	"context"
	"sync"
	"time"

	"github.com/schoolhub/portal/internal/models"
	"go.uber.org/zap"
)

// Fetcher retrieves the menu tree for a role. *client.Client satisfies it.
type Fetcher interface {
	FetchUserMenu(ctx context.Context, role models.Role, schoolID int64) ([]models.MenuItem, error)
}

// Key identifies which menu tree is current: the effective role plus the
// school scope. A zero SchoolID means no school scope.
type Key struct {
	Role     models.Role
	SchoolID int64
}

// Zero reports whether the key has no resolvable role.
func (k Key) Zero() bool { return k.Role == "" }

// State is the resolver's exposed fetch state for the current key.
type State int

// Resolver states
const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Resolver holds at most one menu tree, the one for the current key. Any key
// change discards the old tree immediately and starts a fetch for the new
// key; a fetch that settles after its key was superseded is dropped, so only
// the latest requested key's data is ever exposed.
type Resolver struct {
	mu         sync.Mutex
	fetcher    Fetcher
	logger     *zap.Logger
	staleAfter time.Duration

	key        Key
	state      State
	items      []models.MenuItem
	err        error
	fetchedAt  time.Time
	generation uint64
}

// NewResolver creates a resolver in the Idle state. staleAfter bounds how
// long a Ready tree is served without a background refresh; zero disables
// the freshness window.
func NewResolver(fetcher Fetcher, logger *zap.Logger, staleAfter time.Duration) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		fetcher:    fetcher,
		logger:     logger,
		staleAfter: staleAfter,
	}
}

// SetKey makes key current. A changed key discards the previous tree and
// enters Loading for the new one; an unchanged key is a no-op. A zero key
// resets to Idle.
func (r *Resolver) SetKey(ctx context.Context, key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if key.Zero() {
		r.resetLocked()
		return
	}
	if key == r.key && r.state != StateIdle {
		return
	}
	r.reloadLocked(ctx, key)
}

// Reload unconditionally enters Loading for key and fetches, superseding any
// in-flight fetch. Login uses this so a re-login under the same key still
// refreshes the tree.
func (r *Resolver) Reload(ctx context.Context, key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if key.Zero() {
		r.resetLocked()
		return
	}
	r.reloadLocked(ctx, key)
}

// Refetch forces a new fetch for the current key. A no-op while Idle.
func (r *Resolver) Refetch(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.key.Zero() {
		return
	}
	r.reloadLocked(ctx, r.key)
}

// Reset drops everything and returns to Idle. In-flight responses are
// discarded when they settle.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
}

// Key returns the current key.
func (r *Resolver) Key() Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.key
}

// Snapshot returns the exposed tree, state and error for the current key.
// The tree is empty unless the state is Ready.
func (r *Resolver) Snapshot() ([]models.MenuItem, State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]models.MenuItem, len(r.items))
	copy(items, r.items)
	return items, r.state, r.err
}

// RefreshIfStale starts a background refetch when the Ready tree is older
// than the freshness window. The displayed tree stays Ready while the
// refresh is in flight.
func (r *Resolver) RefreshIfStale(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateReady || r.staleAfter <= 0 {
		return
	}
	if time.Since(r.fetchedAt) <= r.staleAfter {
		return
	}

	r.generation++
	r.startFetch(ctx, r.key, r.generation, true)
}

// resetLocked clears all state. Callers hold the lock.
func (r *Resolver) resetLocked() {
	r.generation++
	r.key = Key{}
	r.state = StateIdle
	r.items = nil
	r.err = nil
}

// reloadLocked enters Loading for key and starts a fetch. Callers hold the
// lock and have ruled out a zero key.
func (r *Resolver) reloadLocked(ctx context.Context, key Key) {
	r.generation++
	r.key = key
	r.state = StateLoading
	r.items = nil
	r.err = nil
	r.startFetch(ctx, key, r.generation, false)
}

// startFetch fetches asynchronously; the result is applied only while gen is
// still the newest request. A stale result, success or failure, is dropped.
// A background refresh keeps the displayed tree on failure instead of
// demoting it to Error.
func (r *Resolver) startFetch(ctx context.Context, key Key, gen uint64, background bool) {
	go func() {
		items, err := r.fetcher.FetchUserMenu(ctx, key.Role, key.SchoolID)

		r.mu.Lock()
		defer r.mu.Unlock()

		if gen != r.generation {
			r.logger.Debug("discarding superseded menu response",
				zap.String("role", string(key.Role)),
				zap.Int64("schoolId", key.SchoolID),
			)
			return
		}

		if err != nil {
			r.logger.Warn("menu fetch failed",
				zap.String("role", string(key.Role)),
				zap.Int64("schoolId", key.SchoolID),
				zap.Error(err),
			)
			if background {
				// The stale-but-valid tree stays up.
				return
			}
			r.state = StateError
			r.items = nil
			r.err = err
			return
		}

		r.state = StateReady
		r.items = items
		r.err = nil
		r.fetchedAt = time.Now()
	}()
}
