package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"til-cli/internal/api"
	"til-cli/internal/session"
	"til-cli/internal/store"
)

func TestNewAppModel_UnauthenticatedStartsAtLogin(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	sess := session.FromConfig(&store.Config{})
	m := newAppModel(api.New("http://localhost:0", sess), sess, nil, nil)

	if m.view != viewLogin {
		t.Fatalf("view = %v, want login", m.view)
	}
	if !strings.Contains(m.View(), "Log in") {
		t.Error("login view not rendered")
	}
}

func TestNewAppModel_AuthenticatedStartsAtProjects(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	sess := session.FromConfig(&store.Config{AccessToken: "tok"})
	m := newAppModel(api.New("http://localhost:0", sess), sess, nil, nil)

	if m.view != viewProjects {
		t.Fatalf("view = %v, want projects", m.view)
	}
}

func TestLoginFlow_SuccessSwitchesToProjects(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/users/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("GET /api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sess := session.FromConfig(&store.Config{})
	m := newAppModel(api.New(srv.URL, sess), sess, nil, nil)

	m.login.inputs[loginFieldEmail].SetValue("a@b.com")
	m.login.inputs[loginFieldPassword].SetValue("secret")

	model2, cmd := m.updateLogin(tea.KeyMsg{Type: tea.KeyEnter})
	am := model2.(appModel)
	msg := cmd()

	model3, _ := am.Update(msg)
	am = model3.(appModel)
	if am.view != viewProjects {
		t.Fatalf("view = %v, want projects after login", am.view)
	}
	if sess.State() != session.Authenticated {
		t.Error("session not authenticated")
	}
}

func TestLoginFlow_FailureStaysWithBanner(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sess := session.FromConfig(&store.Config{})
	m := newAppModel(api.New(srv.URL, sess), sess, nil, nil)

	m.login.inputs[loginFieldEmail].SetValue("a@b.com")
	m.login.inputs[loginFieldPassword].SetValue("nope")

	model2, cmd := m.updateLogin(tea.KeyMsg{Type: tea.KeyEnter})
	am := model2.(appModel)

	model3, _ := am.Update(cmd())
	am = model3.(appModel)
	if am.view != viewLogin {
		t.Fatalf("view = %v, want login", am.view)
	}
	if !strings.Contains(am.View(), "bad credentials") {
		t.Error("server message not surfaced in login view")
	}
}

func TestLogin_EmptyFieldsRejectedLocally(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	sess := session.FromConfig(&store.Config{})
	m := newAppModel(api.New("http://localhost:0", sess), sess, nil, nil)

	model2, cmd := m.updateLogin(tea.KeyMsg{Type: tea.KeyEnter})
	am := model2.(appModel)
	if cmd != nil {
		t.Fatal("no request should fire for empty fields")
	}
	if am.login.errText == "" {
		t.Error("expected a validation message")
	}
}

func TestLogin_ToggleModeShowsSignupFields(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	sess := session.FromConfig(&store.Config{})
	m := newAppModel(api.New("http://localhost:0", sess), sess, nil, nil)

	model2, _ := m.updateLogin(tea.KeyMsg{Type: tea.KeyCtrlS})
	am := model2.(appModel)
	out := am.login.view(80)
	if !strings.Contains(out, "Sign up") || !strings.Contains(out, "username") {
		t.Errorf("signup view = %q", out)
	}
}

func TestExpiredSessionDropsToLogin(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sess := session.FromConfig(&store.Config{AccessToken: "stale"})
	m := newAppModel(api.New(srv.URL, sess), sess, nil, nil)

	msg := m.loadProjects()()
	model2, _ := m.Update(msg)
	am := model2.(appModel)

	if am.view != viewLogin {
		t.Fatalf("view = %v, want login after auth failure", am.view)
	}
	if sess.State() != session.Unauthenticated {
		t.Error("session should be expired locally")
	}
	if sess.Token() != "" {
		t.Error("stale token should be cleared")
	}
}

func TestRenderCardDetailShowsMetadata(t *testing.T) {
	t.Setenv("TIL_TUI_MD_STYLE", "notty")
	cols := testBoard()
	card := cols[0].cards[1]
	card.Content = "Steps:\n\n- check the form\n- check the redirect"

	out := renderCardDetail(card, cols[0].column, 80)
	for _, want := range []string{"Fix login flow", "in Todo", "urgent", "check the form"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
}
