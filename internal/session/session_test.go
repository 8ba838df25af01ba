package session

import (
	"context"
	"errors"
	"testing"

	"github.com/zentask/zentask/internal/api"
)

// fakeAuthAPI scripts the auth endpoints for controller tests.
type fakeAuthAPI struct {
	loginPair    api.TokenPair
	loginErr     error
	registerPair api.TokenPair
	registerErr  error
	user         *api.User
	meErr        error
	meCalls      int
}

func (f *fakeAuthAPI) Login(ctx context.Context, creds api.Credentials) (api.TokenPair, error) {
	return f.loginPair, f.loginErr
}

func (f *fakeAuthAPI) Register(ctx context.Context, creds api.Credentials) (api.TokenPair, error) {
	return f.registerPair, f.registerErr
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*api.User, error) {
	f.meCalls++
	return f.user, f.meErr
}

func TestBootstrapWithoutTokenIsUnauthenticated(t *testing.T) {
	client := &fakeAuthAPI{}
	ctrl := NewController(client, api.NewMemoryTokenStore(), nil)

	if !ctrl.Snapshot().Loading {
		t.Fatal("controller did not start in Loading state")
	}

	ctrl.Bootstrap(context.Background())

	snap := ctrl.Snapshot()
	if snap.Loading {
		t.Error("still Loading after bootstrap")
	}
	if snap.Authenticated() {
		t.Error("authenticated without a stored token")
	}
	if client.meCalls != 0 {
		t.Errorf("identity endpoint called %d times without a token", client.meCalls)
	}
}

func TestBootstrapWithValidToken(t *testing.T) {
	client := &fakeAuthAPI{user: &api.User{ID: "u1", Username: "cyuser"}}
	store := api.NewMemoryTokenStore()
	store.Store(api.TokenPair{AccessToken: "a1", RefreshToken: "r1"})
	ctrl := NewController(client, store, nil)

	ctrl.Bootstrap(context.Background())

	snap := ctrl.Snapshot()
	if !snap.Authenticated() {
		t.Fatal("not authenticated after bootstrap with valid token")
	}
	if snap.User.Username != "cyuser" {
		t.Errorf("user = %+v", snap.User)
	}
}

func TestBootstrapWithInvalidTokenClearsPair(t *testing.T) {
	client := &fakeAuthAPI{meErr: errors.New("unauthorized")}
	store := api.NewMemoryTokenStore()
	store.Store(api.TokenPair{AccessToken: "stale", RefreshToken: "stale"})
	ctrl := NewController(client, store, nil)

	ctrl.Bootstrap(context.Background())

	snap := ctrl.Snapshot()
	if snap.Authenticated() {
		t.Error("authenticated despite failed identity fetch")
	}
	if store.Access() != "" || store.Refresh() != "" {
		t.Error("token pair not cleared after failed identity fetch")
	}
}

func TestLoginSuccessNavigatesHome(t *testing.T) {
	client := &fakeAuthAPI{
		loginPair: api.TokenPair{AccessToken: "a1", RefreshToken: "r1"},
		user:      &api.User{ID: "u1", Username: "cyuser"},
	}
	store := api.NewMemoryTokenStore()

	var routes []Route
	ctrl := NewController(client, store, func(r Route) { routes = append(routes, r) })

	if err := ctrl.Login(context.Background(), api.Credentials{Username: "cyuser", Password: "pw"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if store.Access() != "a1" || store.Refresh() != "r1" {
		t.Error("token pair not persisted on login")
	}
	if !ctrl.Snapshot().Authenticated() {
		t.Error("not authenticated after login")
	}
	if len(routes) != 1 || routes[0] != RouteHome {
		t.Errorf("routes = %v, want [home]", routes)
	}
}

func TestLoginFailureRecordsServerMessage(t *testing.T) {
	client := &fakeAuthAPI{
		loginErr: &api.APIError{StatusCode: 401, Message: "Invalid credentials"},
	}
	ctrl := NewController(client, api.NewMemoryTokenStore(), nil)

	if err := ctrl.Login(context.Background(), api.Credentials{}); err == nil {
		t.Fatal("Login() succeeded, want error")
	}
	if got := ctrl.Snapshot().AuthError; got != "Invalid credentials" {
		t.Errorf("AuthError = %q, want server message", got)
	}
}

func TestLoginFailureFallbackMessage(t *testing.T) {
	client := &fakeAuthAPI{loginErr: errors.New("connection refused")}
	ctrl := NewController(client, api.NewMemoryTokenStore(), nil)

	ctrl.Login(context.Background(), api.Credentials{})
	if got := ctrl.Snapshot().AuthError; got != "Login failed" {
		t.Errorf("AuthError = %q, want fallback %q", got, "Login failed")
	}
}

func TestRegisterFailureFallbackMessage(t *testing.T) {
	client := &fakeAuthAPI{registerErr: errors.New("connection refused")}
	ctrl := NewController(client, api.NewMemoryTokenStore(), nil)

	ctrl.Register(context.Background(), api.Credentials{})
	if got := ctrl.Snapshot().AuthError; got != "Registration failed" {
		t.Errorf("AuthError = %q, want fallback %q", got, "Registration failed")
	}
}

func TestLogoutClearsEverythingAndNavigates(t *testing.T) {
	client := &fakeAuthAPI{
		loginPair: api.TokenPair{AccessToken: "a1", RefreshToken: "r1"},
		user:      &api.User{ID: "u1"},
	}
	store := api.NewMemoryTokenStore()

	var routes []Route
	ctrl := NewController(client, store, func(r Route) { routes = append(routes, r) })

	ctrl.Login(context.Background(), api.Credentials{})
	ctrl.Logout()
	ctrl.Logout() // idempotent

	snap := ctrl.Snapshot()
	if snap.Authenticated() || snap.AuthError != "" || snap.Loading {
		t.Errorf("snapshot after logout = %+v", snap)
	}
	if store.Access() != "" || store.Refresh() != "" {
		t.Error("tokens not cleared on logout")
	}
	if len(routes) != 3 || routes[1] != RouteLogin || routes[2] != RouteLogin {
		t.Errorf("routes = %v, want [home login login]", routes)
	}
}

func TestUnauthorizedSignalLogsOut(t *testing.T) {
	client := &fakeAuthAPI{
		loginPair: api.TokenPair{AccessToken: "a1", RefreshToken: "r1"},
		user:      &api.User{ID: "u1"},
	}
	store := api.NewMemoryTokenStore()
	ctrl := NewController(client, store, nil)
	ctrl.Login(context.Background(), api.Credentials{})

	ctrl.HandleUnauthorized()

	if ctrl.Snapshot().Authenticated() {
		t.Error("still authenticated after unauthorized signal")
	}
	if store.Access() != "" {
		t.Error("tokens not cleared after unauthorized signal")
	}
}

func TestWatchStopsOnContextCancel(t *testing.T) {
	ctrl := NewController(&fakeAuthAPI{}, api.NewMemoryTokenStore(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ctrl.Watch(ctx, make(chan struct{}))
		close(done)
	}()
	cancel()
	<-done
}
