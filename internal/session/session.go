// Package session owns the client-side authentication state machine:
// Loading at startup, then Authenticated or Unauthenticated, driven by
// bootstrap, login, register, logout, and forced-unauthorized events.
package session

import (
	"context"
	"sync"

	"github.com/zentask/zentask/internal/api"
)

// Route names a navigation target triggered by a session transition.
type Route string

const (
	RouteHome  Route = "home"
	RouteLogin Route = "login"
)

// AuthAPI is the slice of the API client the controller consumes.
type AuthAPI interface {
	Login(ctx context.Context, creds api.Credentials) (api.TokenPair, error)
	Register(ctx context.Context, creds api.Credentials) (api.TokenPair, error)
	Me(ctx context.Context) (*api.User, error)
}

// Snapshot is an immutable view of the session state.
type Snapshot struct {
	User      *api.User
	Loading   bool
	AuthError string
}

// Authenticated reports whether a validated token produced a
// successful identity fetch.
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// Controller owns the session state. All mutations are serialized; a
// generation counter discards identity loads superseded by a logout so
// a slow bootstrap cannot resurrect a signed-out session.
type Controller struct {
	client   AuthAPI
	tokens   api.TokenStore
	navigate func(Route)

	mu         sync.Mutex
	generation int
	user       *api.User
	loading    bool
	authError  string
}

// NewController creates a session controller starting in the Loading
// state. navigate may be nil when the caller handles navigation itself.
func NewController(client AuthAPI, tokens api.TokenStore, navigate func(Route)) *Controller {
	if navigate == nil {
		navigate = func(Route) {}
	}
	return &Controller{
		client:   client,
		tokens:   tokens,
		navigate: navigate,
		loading:  true,
	}
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		User:      c.user,
		Loading:   c.loading,
		AuthError: c.authError,
	}
}

// Bootstrap resolves the initial session state. Without a stored access
// token the session becomes Unauthenticated immediately; otherwise the
// stored token is validated against the identity endpoint, and any
// failure clears the stored pair.
func (c *Controller) Bootstrap(ctx context.Context) {
	c.loadUser(ctx)
}

// Login authenticates with the given credentials. On success the token
// pair is persisted, the identity is loaded, and navigation moves to
// the home view. On failure the server-provided message (or a generic
// fallback) is recorded and the error is returned so the form can react.
func (c *Controller) Login(ctx context.Context, creds api.Credentials) error {
	return c.authenticate(ctx, creds, c.client.Login, "Login failed")
}

// Register creates a new account; otherwise symmetric to Login.
func (c *Controller) Register(ctx context.Context, creds api.Credentials) error {
	return c.authenticate(ctx, creds, c.client.Register, "Registration failed")
}

// Logout clears tokens, user, and error, and navigates to the login
// view. Idempotent.
func (c *Controller) Logout() {
	c.mu.Lock()
	c.generation++
	c.user = nil
	c.authError = ""
	c.loading = false
	c.mu.Unlock()

	c.tokens.Clear()
	c.navigate(RouteLogin)
}

// HandleUnauthorized reacts to the client pipeline's unrecoverable-401
// signal. The pipeline has already cleared the stored tokens; clearing
// again here keeps the transition idempotent.
func (c *Controller) HandleUnauthorized() {
	c.Logout()
}

// Watch consumes unauthorized signals until ctx is done. Intended to
// run in its own goroutine, wired to Client.Unauthorized().
func (c *Controller) Watch(ctx context.Context, unauthorized <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-unauthorized:
			c.HandleUnauthorized()
		}
	}
}

// ClearAuthError discards a previously recorded authentication error.
func (c *Controller) ClearAuthError() {
	c.mu.Lock()
	c.authError = ""
	c.mu.Unlock()
}

type authCall func(ctx context.Context, creds api.Credentials) (api.TokenPair, error)

func (c *Controller) authenticate(ctx context.Context, creds api.Credentials, call authCall, fallback string) error {
	c.mu.Lock()
	c.authError = ""
	c.mu.Unlock()

	pair, err := call(ctx, creds)
	if err != nil {
		message := api.ErrorMessage(err)
		if message == "" {
			message = fallback
		}
		c.mu.Lock()
		c.authError = message
		c.mu.Unlock()
		return err
	}

	if err := c.tokens.Store(pair); err != nil {
		return err
	}
	c.loadUser(ctx)
	c.navigate(RouteHome)
	return nil
}

// loadUser validates the stored access token against the identity
// endpoint. Results are applied only if no logout happened in between.
func (c *Controller) loadUser(ctx context.Context) {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	if c.tokens.Access() == "" {
		c.mu.Lock()
		if gen == c.generation {
			c.user = nil
			c.loading = false
		}
		c.mu.Unlock()
		return
	}

	user, err := c.client.Me(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// Superseded by a logout while the fetch was in flight.
		return
	}
	if err != nil {
		c.user = nil
		c.tokens.Clear()
	} else {
		c.user = user
	}
	c.loading = false
}
