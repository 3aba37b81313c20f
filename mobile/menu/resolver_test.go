package menu

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/schoolhub/portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedFetcher blocks each fetch until its release channel is closed, so
// tests control the order in which responses settle.
type gatedFetcher struct {
	mu    sync.Mutex
	calls []gatedCall
}

type gatedCall struct {
	key     Key
	release chan struct{}
	items   []models.MenuItem
	err     error
}

func (f *gatedFetcher) FetchUserMenu(ctx context.Context, role models.Role, schoolID int64) ([]models.MenuItem, error) {
	f.mu.Lock()
	call := gatedCall{key: Key{Role: role, SchoolID: schoolID}, release: make(chan struct{})}
	f.calls = append(f.calls, call)
	idx := len(f.calls) - 1
	f.mu.Unlock()

	<-call.release

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[idx].items, f.calls[idx].err
}

// waitCalls blocks until n fetches have started.
func (f *gatedFetcher) waitCalls(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return len(f.calls) >= n
	}, time.Second, time.Millisecond)
}

// respond sets the outcome of call i (0-based) and releases it.
func (f *gatedFetcher) respond(i int, items []models.MenuItem, err error) {
	f.mu.Lock()
	f.calls[i].items = items
	f.calls[i].err = err
	release := f.calls[i].release
	f.mu.Unlock()
	close(release)
}

// stubFetcher answers immediately with a fixed result.
type stubFetcher struct {
	mu    sync.Mutex
	items []models.MenuItem
	err   error
	calls int
}

func (f *stubFetcher) FetchUserMenu(ctx context.Context, role models.Role, schoolID int64) ([]models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.items, f.err
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func teacherMenu() []models.MenuItem {
	return []models.MenuItem{leaf(1, "Dashboard", "/teacher/dashboard", 1, models.RoleTeacher)}
}

func parentMenu() []models.MenuItem {
	return []models.MenuItem{leaf(2, "My Children", "/parent/my-children", 1, models.RoleParent)}
}

func waitState(t *testing.T, r *Resolver, want State) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, state, _ := r.Snapshot()
		return state == want
	}, time.Second, time.Millisecond)
}

func TestResolverStartsIdle(t *testing.T) {
	r := NewResolver(&stubFetcher{}, nil, 0)

	items, state, err := r.Snapshot()
	assert.Empty(t, items)
	assert.Equal(t, StateIdle, state)
	assert.NoError(t, err)
	assert.True(t, r.Key().Zero())
}

func TestResolverSetKeySuccess(t *testing.T) {
	fetcher := &stubFetcher{items: teacherMenu()}
	r := NewResolver(fetcher, nil, 0)

	r.SetKey(context.Background(), Key{Role: models.RoleTeacher, SchoolID: 7})
	waitState(t, r, StateReady)

	items, _, err := r.Snapshot()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dashboard", items[0].Title)
	assert.Equal(t, Key{Role: models.RoleTeacher, SchoolID: 7}, r.Key())
}

func TestResolverSetKeyEntersLoading(t *testing.T) {
	fetcher := &gatedFetcher{}
	r := NewResolver(fetcher, nil, 0)

	r.SetKey(context.Background(), Key{Role: models.RoleTeacher})

	items, state, err := r.Snapshot()
	assert.Equal(t, StateLoading, state)
	assert.Empty(t, items)
	assert.NoError(t, err)

	fetcher.waitCalls(t, 1)
	fetcher.respond(0, teacherMenu(), nil)
	waitState(t, r, StateReady)
}

func TestResolverSetKeySameKeyNoRefetch(t *testing.T) {
	fetcher := &stubFetcher{items: teacherMenu()}
	r := NewResolver(fetcher, nil, 0)

	key := Key{Role: models.RoleTeacher, SchoolID: 7}
	r.SetKey(context.Background(), key)
	waitState(t, r, StateReady)

	r.SetKey(context.Background(), key)

	_, state, _ := r.Snapshot()
	assert.Equal(t, StateReady, state)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestResolverSetKeyZeroResets(t *testing.T) {
	fetcher := &stubFetcher{items: teacherMenu()}
	r := NewResolver(fetcher, nil, 0)

	r.SetKey(context.Background(), Key{Role: models.RoleTeacher})
	waitState(t, r, StateReady)

	r.SetKey(context.Background(), Key{})

	items, state, err := r.Snapshot()
	assert.Equal(t, StateIdle, state)
	assert.Empty(t, items)
	assert.NoError(t, err)
	assert.True(t, r.Key().Zero())
}

func TestResolverFetchError(t *testing.T) {
	want := errors.New("boom")
	r := NewResolver(&stubFetcher{err: want}, nil, 0)

	r.SetKey(context.Background(), Key{Role: models.RoleTeacher})
	waitState(t, r, StateError)

	items, _, err := r.Snapshot()
	assert.Empty(t, items)
	assert.ErrorIs(t, err, want)
}

// A response for a superseded key must never surface, even when it settles
// after the response for the current key.
func TestResolverLastRequestWins(t *testing.T) {
	fetcher := &gatedFetcher{}
	r := NewResolver(fetcher, nil, 0)

	r.SetKey(context.Background(), Key{Role: models.RoleTeacher})
	fetcher.waitCalls(t, 1)

	r.SetKey(context.Background(), Key{Role: models.RoleParent})
	fetcher.waitCalls(t, 2)

	// The newer key's response settles first.
	fetcher.respond(1, parentMenu(), nil)
	waitState(t, r, StateReady)

	// The stale response settles last and must be dropped.
	fetcher.respond(0, teacherMenu(), nil)

	assert.Never(t, func() bool {
		items, _, _ := r.Snapshot()
		return len(items) == 1 && items[0].Title == "Dashboard"
	}, 50*time.Millisecond, 5*time.Millisecond)

	items, state, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, StateReady, state)
	require.Len(t, items, 1)
	assert.Equal(t, "My Children", items[0].Title)
	assert.Equal(t, Key{Role: models.RoleParent}, r.Key())
}

// A stale error must not clobber the current key's data either.
func TestResolverStaleErrorDropped(t *testing.T) {
	fetcher := &gatedFetcher{}
	r := NewResolver(fetcher, nil, 0)

	r.SetKey(context.Background(), Key{Role: models.RoleTeacher})
	fetcher.waitCalls(t, 1)

	r.SetKey(context.Background(), Key{Role: models.RoleParent})
	fetcher.waitCalls(t, 2)

	fetcher.respond(1, parentMenu(), nil)
	waitState(t, r, StateReady)

	fetcher.respond(0, nil, errors.New("boom"))

	assert.Never(t, func() bool {
		_, state, _ := r.Snapshot()
		return state == StateError
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestResolverRefetchSupersedesInFlight(t *testing.T) {
	fetcher := &gatedFetcher{}
	r := NewResolver(fetcher, nil, 0)

	key := Key{Role: models.RoleTeacher}
	r.SetKey(context.Background(), key)
	fetcher.waitCalls(t, 1)

	r.Refetch(context.Background())
	fetcher.waitCalls(t, 2)

	fetcher.respond(1, teacherMenu(), nil)
	waitState(t, r, StateReady)

	// First fetch settles late with different data; it must be dropped.
	fetcher.respond(0, parentMenu(), nil)

	assert.Never(t, func() bool {
		items, _, _ := r.Snapshot()
		return len(items) == 1 && items[0].Title == "My Children"
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestResolverRefetchWhileIdleNoOp(t *testing.T) {
	fetcher := &stubFetcher{items: teacherMenu()}
	r := NewResolver(fetcher, nil, 0)

	r.Refetch(context.Background())

	_, state, _ := r.Snapshot()
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, 0, fetcher.callCount())
}

func TestResolverReloadSameKeyRefetches(t *testing.T) {
	fetcher := &stubFetcher{items: teacherMenu()}
	r := NewResolver(fetcher, nil, 0)

	key := Key{Role: models.RoleTeacher}
	r.SetKey(context.Background(), key)
	waitState(t, r, StateReady)

	r.Reload(context.Background(), key)
	waitState(t, r, StateReady)

	assert.Equal(t, 2, fetcher.callCount())
}

func TestResolverResetDropsInFlight(t *testing.T) {
	fetcher := &gatedFetcher{}
	r := NewResolver(fetcher, nil, 0)

	r.SetKey(context.Background(), Key{Role: models.RoleTeacher})
	fetcher.waitCalls(t, 1)

	r.Reset()
	fetcher.respond(0, teacherMenu(), nil)

	assert.Never(t, func() bool {
		_, state, _ := r.Snapshot()
		return state != StateIdle
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestResolverRefreshIfStale(t *testing.T) {
	fetcher := &stubFetcher{items: teacherMenu()}
	r := NewResolver(fetcher, nil, 10*time.Millisecond)

	r.SetKey(context.Background(), Key{Role: models.RoleTeacher})
	waitState(t, r, StateReady)

	// Fresh: no refetch.
	r.RefreshIfStale(context.Background())
	assert.Equal(t, 1, fetcher.callCount())

	time.Sleep(20 * time.Millisecond)
	r.RefreshIfStale(context.Background())

	require.Eventually(t, func() bool {
		return fetcher.callCount() == 2
	}, time.Second, time.Millisecond)
	waitState(t, r, StateReady)
}

// A failed background refresh keeps serving the tree it already has.
func TestResolverStaleRefreshFailureKeepsTree(t *testing.T) {
	fetcher := &gatedFetcher{}
	r := NewResolver(fetcher, nil, 10*time.Millisecond)

	r.SetKey(context.Background(), Key{Role: models.RoleTeacher})
	fetcher.waitCalls(t, 1)
	fetcher.respond(0, teacherMenu(), nil)
	waitState(t, r, StateReady)

	time.Sleep(20 * time.Millisecond)
	r.RefreshIfStale(context.Background())
	fetcher.waitCalls(t, 2)
	fetcher.respond(1, nil, errors.New("backend down"))

	assert.Never(t, func() bool {
		_, state, _ := r.Snapshot()
		return state != StateReady
	}, 50*time.Millisecond, 5*time.Millisecond)

	items, _, err := r.Snapshot()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dashboard", items[0].Title)
}

func TestResolverDisabledStaleWindow(t *testing.T) {
	fetcher := &stubFetcher{items: teacherMenu()}
	r := NewResolver(fetcher, nil, 0)

	r.SetKey(context.Background(), Key{Role: models.RoleTeacher})
	waitState(t, r, StateReady)

	r.RefreshIfStale(context.Background())
	assert.Equal(t, 1, fetcher.callCount())
}
