// Package session owns the client's authentication state: a two-state
// machine (Unauthenticated <-> Authenticated) around a persisted bearer
// token. It is handed explicitly to whatever needs it — the API client
// reads the token through it, the TUI gates views on its state — rather
// than being an ambient flag.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"til-cli/internal/api"
	"til-cli/internal/store"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

var (
	ErrNotAuthenticated     = errors.New("not authenticated: run `til login`")
	ErrAlreadyAuthenticated = errors.New("already authenticated: run `til logout` first")
	ErrNoToken              = errors.New("login response carried no token")
)

// Session checks for a persisted token once at construction and again
// right after a successful login. There is no expiry timer: an expired
// token is only discovered when a call fails with an auth error, which
// the caller routes back to ExpireLocally.
type Session struct {
	mu    sync.Mutex
	cfg   *store.Config
	state State
}

// Load builds the session from the persisted config.
func Load() (*Session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg), nil
}

func FromConfig(cfg *store.Config) *Session {
	s := &Session{cfg: cfg}
	if strings.TrimSpace(cfg.AccessToken) != "" {
		s.state = Authenticated
	}
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.AccessToken
}

// Config exposes the backing config for callers that persist other
// fields (selected project, TUI prefs).
func (s *Session) Config() *store.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Login authenticates against the backend, persists the returned token
// and transitions to Authenticated. The API error is returned as-is so
// the auth forms can surface its message.
func (s *Session) Login(ctx context.Context, client *api.Client, email, password string) error {
	s.mu.Lock()
	if s.state == Authenticated {
		s.mu.Unlock()
		return ErrAlreadyAuthenticated
	}
	s.mu.Unlock()

	resp, err := client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return ErrNoToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.AccessToken = resp.Token
	if err := store.SaveConfig(s.cfg); err != nil {
		s.cfg.AccessToken = ""
		return err
	}
	// Re-check, mirroring the startup check: presence of a token is what
	// makes the session authenticated.
	if s.cfg.AccessToken != "" {
		s.state = Authenticated
	}
	return nil
}

// Logout clears the persisted token and transitions to Unauthenticated.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Authenticated {
		return ErrNotAuthenticated
	}
	s.cfg.AccessToken = ""
	s.state = Unauthenticated
	return store.SaveConfig(s.cfg)
}

// ExpireLocally drops to Unauthenticated without touching the server,
// for use when a call came back with api.IsAuth (expired token). The
// stale token is cleared so the next start lands on the login gate.
func (s *Session) ExpireLocally() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Authenticated {
		return nil
	}
	s.cfg.AccessToken = ""
	s.state = Unauthenticated
	return store.SaveConfig(s.cfg)
}
