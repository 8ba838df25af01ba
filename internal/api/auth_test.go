package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginReturnsPairWithoutStoring(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			t.Errorf("path = %s, want /api/login", r.URL.Path)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if creds.Username != "cyuser" || creds.Password != "TestPass123!" {
			t.Errorf("credentials = %+v", creds)
		}
		w.Write([]byte(`{"accessToken":"a1","refreshToken":"r1"}`))
	}))
	defer server.Close()

	store := NewMemoryTokenStore()
	client := NewClient(server.URL, store)
	pair, err := client.Login(context.Background(), Credentials{Username: "cyuser", Password: "TestPass123!"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if pair.AccessToken != "a1" || pair.RefreshToken != "r1" {
		t.Errorf("pair = %+v", pair)
	}
	// Persisting the pair is the caller's decision.
	if store.Access() != "" {
		t.Errorf("Login stored tokens itself: %q", store.Access())
	}
}

func TestRegisterConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Username already exists"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, NewMemoryTokenStore())
	_, err := client.Register(context.Background(), Credentials{Username: "taken", Password: "password1"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.IsConflict() {
		t.Fatalf("error = %v, want 409 APIError", err)
	}
	if ErrorMessage(err) != "Username already exists" {
		t.Errorf("ErrorMessage = %q", ErrorMessage(err))
	}
}

func TestMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/me" {
			t.Errorf("path = %s, want /api/user/me", r.URL.Path)
		}
		w.Write([]byte(`{"id":"u1","username":"cyuser","createdAt":"2026-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, seedStore("token", "refresh"))
	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if user.ID != "u1" || user.Username != "cyuser" {
		t.Errorf("user = %+v", user)
	}
}
