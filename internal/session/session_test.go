package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"til-cli/internal/api"
	"til-cli/internal/store"
)

func loginServer(t *testing.T, token string, status int, message string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/login" {
			http.NotFound(w, r)
			return
		}
		if status >= 400 {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
			return
		}
		_ = json.NewEncoder(w).Encode(api.LoginResponse{Token: token})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin_TransitionsAndPersists(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	srv := loginServer(t, "abc", 0, "")

	s := FromConfig(&store.Config{})
	if s.State() != Unauthenticated {
		t.Fatal("fresh session should be unauthenticated")
	}

	client := api.New(srv.URL, s)
	if err := s.Login(context.Background(), client, "a@b.com", "x"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.State() != Authenticated {
		t.Fatal("expected authenticated state after login")
	}
	if s.Token() != "abc" {
		t.Fatalf("Token = %q, want abc", s.Token())
	}

	// Token must be on disk so the next run starts authenticated.
	reloaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.State() != Authenticated || reloaded.Token() != "abc" {
		t.Fatalf("persisted session mismatch: state=%v token=%q", reloaded.State(), reloaded.Token())
	}
}

func TestLogin_FailureKeepsUnauthenticated(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	srv := loginServer(t, "", http.StatusUnauthorized, "bad credentials")

	s := FromConfig(&store.Config{})
	client := api.New(srv.URL, s)
	err := s.Login(context.Background(), client, "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if !api.IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if got := api.UserMessage(err, "fallback"); got != "bad credentials" {
		t.Fatalf("UserMessage = %q", got)
	}
	if s.State() != Unauthenticated || s.Token() != "" {
		t.Fatal("failed login must not change session state")
	}
}

func TestLogin_EmptyTokenRejected(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	srv := loginServer(t, "", 0, "")

	s := FromConfig(&store.Config{})
	if err := s.Login(context.Background(), api.New(srv.URL, s), "a@b.com", "x"); err != ErrNoToken {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
}

func TestLogout_ClearsToken(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())

	s := FromConfig(&store.Config{AccessToken: "abc"})
	if s.State() != Authenticated {
		t.Fatal("token present should mean authenticated")
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.State() != Unauthenticated || s.Token() != "" {
		t.Fatal("logout should clear token and state")
	}
	if err := s.Logout(); err != ErrNotAuthenticated {
		t.Fatalf("second logout = %v, want ErrNotAuthenticated", err)
	}
}

func TestSubsequentCallsCarryToken(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())

	var loggedIn bool
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/users/login":
			loggedIn = true
			_ = json.NewEncoder(w).Encode(api.LoginResponse{Token: "abc"})
		case "/api/v1/projects":
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte("[]"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := FromConfig(&store.Config{})
	client := api.New(srv.URL, s)
	if err := s.Login(context.Background(), client, "a@b.com", "x"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := client.Projects(context.Background()); err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if !loggedIn || gotAuth != "Bearer abc" {
		t.Fatalf("expected bearer token on calls after login, got %q", gotAuth)
	}
}
