package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"til-cli/internal/model"
)

func staticToken(tok string) TokenSource {
	return TokenFunc(func() string { return tok })
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Project{})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("abc"))
	if _, err := c.Projects(context.Background()); err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer abc")
	}
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	var hadHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadHeader = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode(LoginResponse{Token: "t"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""))
	if _, err := c.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if hadHeader {
		t.Fatal("expected no Authorization header before login")
	}
}

func TestDo_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(error) bool
		message string
	}{
		{"unauthorized", 401, `{"message":"token expired"}`, IsAuth, "token expired"},
		{"validation", 400, `{"message":"title required"}`, IsValidation, "title required"},
		{"not found", 404, `{"message":"project not found"}`, IsValidation, "project not found"},
		{"server", 500, `boom`, IsServer, ""},
		{"bad gateway", 502, ``, IsServer, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, staticToken("tok"))
			_, err := c.Projects(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Fatalf("wrong kind for status %d: %v", tt.status, err)
			}
			if got := UserMessage(err, "fallback"); tt.message != "" && got != tt.message {
				t.Fatalf("UserMessage = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, staticToken(""))
	_, err := c.Projects(context.Background())
	if !IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestDo_MalformedBodyIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""))
	_, err := c.Projects(context.Background())
	if !IsNetwork(err) {
		t.Fatalf("expected network error for malformed body, got %v", err)
	}
}

func TestUserMessage_Fallback(t *testing.T) {
	err := &Error{Kind: KindNetwork, Op: "users.login"}
	if got := UserMessage(err, "login failed"); got != "login failed" {
		t.Fatalf("UserMessage = %q", got)
	}
}
