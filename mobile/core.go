// Package mobile wires the client-side building blocks together: the
// credential store, the API client, the session and the menu resolver, behind
// one facade the presentation layer drives.
package mobile

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/schoolhub/portal/internal/models"
	"github.com/schoolhub/portal/mobile/client"
	"github.com/schoolhub/portal/mobile/credentials"
	"github.com/schoolhub/portal/mobile/menu"
	"github.com/schoolhub/portal/mobile/session"
	"go.uber.org/zap"
)

const defaultMenuStaleAfter = 5 * time.Minute

// Config configures a Core.
type Config struct {
	// BaseURL is the portal API root, e.g. "https://api.example.com/api/v1".
	BaseURL string
	// Language is the Accept-Language value; defaults to "fa".
	Language string
	// CredentialsPath is the file the token and user record persist to.
	// Ignored when WithStore supplies a store.
	CredentialsPath string
	// MenuStaleAfter bounds how long a resolved menu is served before a
	// background refresh; defaults to 5 minutes, negative disables.
	MenuStaleAfter time.Duration
}

// Core is the composition root of the client. One Core per app process.
type Core struct {
	logger   *zap.Logger
	store    credentials.Store
	client   *client.Client
	session  *session.Session
	resolver *menu.Resolver
}

// Option customizes a Core.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	store      credentials.Store
	httpClient *http.Client
}

// WithLogger sets the logger shared by all components.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore replaces the file-backed credential store, e.g. with a
// platform keychain adapter or an in-memory store in tests.
func WithStore(store credentials.Store) Option {
	return func(o *options) { o.store = store }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// New builds a Core from the config.
func New(cfg Config, opts ...Option) (*Core, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	store := o.store
	if store == nil {
		if cfg.CredentialsPath == "" {
			return nil, fmt.Errorf("credentials path is required without a custom store")
		}
		store = credentials.NewFileStore(cfg.CredentialsPath)
	}

	clientOpts := []client.Option{client.WithLogger(o.logger)}
	if cfg.Language != "" {
		clientOpts = append(clientOpts, client.WithLanguage(cfg.Language))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(o.httpClient))
	}
	api := client.New(cfg.BaseURL, store, clientOpts...)

	staleAfter := cfg.MenuStaleAfter
	if staleAfter == 0 {
		staleAfter = defaultMenuStaleAfter
	} else if staleAfter < 0 {
		staleAfter = 0
	}

	return &Core{
		logger:   o.logger,
		store:    store,
		client:   api,
		session:  session.New(store, o.logger),
		resolver: menu.NewResolver(api, o.logger, staleAfter),
	}, nil
}

// Client exposes the API client for calls the Core does not mediate, such as
// the dashboard endpoints.
func (c *Core) Client() *client.Client { return c.client }

// Restore loads the persisted session at app start and, when a user comes
// back, starts resolving their menu. A store failure leaves the app signed
// out and is returned as *session.AuthPersistenceError.
func (c *Core) Restore(ctx context.Context) error {
	err := c.session.Restore(ctx)
	c.syncMenu(ctx)
	return err
}

// Login authenticates, persists the credentials and force-loads the menu for
// the new identity. A *session.AuthPersistenceError means the login itself
// succeeded but will not survive a restart.
func (c *Core) Login(ctx context.Context, req models.LoginRequest) error {
	resp, err := c.client.Login(ctx, req)
	if err != nil {
		return err
	}

	persistErr := c.session.Login(ctx, resp.Token, resp.User())

	// Reload rather than SetKey: a re-login under the same role must still
	// refresh the tree.
	key := c.menuKey()
	c.resolver.Reload(ctx, key)

	return persistErr
}

// Logout clears the credentials and drops the menu. Idempotent; it never
// fails.
func (c *Core) Logout(ctx context.Context) {
	c.session.Logout(ctx)
	c.resolver.Reset()
}

// UpdateUser merges a partial update into the current user. When the patch
// touches the role or the current school, the menu is re-resolved for the new
// scope.
func (c *Core) UpdateUser(ctx context.Context, patch models.UserPatch) {
	c.session.UpdateUser(patch)
	if patch.Role != nil || patch.CurrentSchool != nil {
		c.syncMenu(ctx)
	}
}

// SetRoleContext makes the user act as role and re-resolves the menu for it.
func (c *Core) SetRoleContext(ctx context.Context, role models.Role) error {
	if err := c.session.SetRoleContext(role); err != nil {
		return err
	}
	c.syncMenu(ctx)
	return nil
}

// ResetRoleContext clears the act-as override and re-resolves the menu for
// the user's primary role.
func (c *Core) ResetRoleContext(ctx context.Context) {
	c.session.ResetRoleContext()
	c.syncMenu(ctx)
}

// UpdateSchoolContext switches the current school and optionally the role
// context, then re-resolves the menu for the new scope.
func (c *Core) UpdateSchoolContext(ctx context.Context, schoolID int64, roleContext models.Role) {
	c.session.UpdateSchoolContext(schoolID, roleContext)
	c.syncMenu(ctx)
}

// RefetchMenu forces a new fetch for the current menu scope.
func (c *Core) RefetchMenu(ctx context.Context) {
	c.resolver.Refetch(ctx)
}

// CheckPermission reports whether the current user holds the permission.
func (c *Core) CheckPermission(permission string) bool {
	return c.session.CheckPermission(permission)
}

// Session exposes the identity state for read access.
func (c *Core) Session() *session.Session { return c.session }

// State is a point-in-time view for the presentation layer.
type State struct {
	Initialized   bool
	Authenticated bool
	User          *models.User
	EffectiveRole models.Role

	Menu      []models.MenuItem
	MenuState menu.State
	MenuErr   error
	Entries   []menu.Entry
}

// Snapshot returns the current state and kicks a background menu refresh when
// the resolved tree has gone stale.
func (c *Core) Snapshot(ctx context.Context) State {
	c.resolver.RefreshIfStale(ctx)

	items, menuState, menuErr := c.resolver.Snapshot()
	role := c.session.EffectiveRole()

	st := State{
		Initialized:   c.session.Initialized(),
		Authenticated: c.session.Authenticated(),
		User:          c.session.User(),
		EffectiveRole: role,
		Menu:          items,
		MenuState:     menuState,
		MenuErr:       menuErr,
	}
	if menuState == menu.StateReady && role != "" {
		st.Entries = menu.NavigableEntries(items, role)
	}
	return st
}

// menuKey derives the resolver key from the current identity.
func (c *Core) menuKey() menu.Key {
	return menu.Key{
		Role:     c.session.EffectiveRole(),
		SchoolID: c.session.CurrentSchoolID(),
	}
}

// syncMenu points the resolver at the current identity's scope. Signed out,
// the key is zero and the resolver goes Idle.
func (c *Core) syncMenu(ctx context.Context) {
	c.resolver.SetKey(ctx, c.menuKey())
}
