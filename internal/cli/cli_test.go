package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"til-cli/internal/model"
	"til-cli/internal/store"
)

// run executes the root command with args against the given backend,
// returning stdout, stderr and the execution error.
func run(t *testing.T, baseURL string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--base-url", baseURL))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// kanbanBackend is a minimal fake of the til server: enough routes for
// the command flows under test, recording the last request seen.
type kanbanBackend struct {
	lastMethod string
	lastPath   string
	lastBody   string
}

func (b *kanbanBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.lastMethod = r.Method
		b.lastPath = r.URL.Path
		b.lastBody = strings.TrimSpace(string(body))
	}
	mux.HandleFunc("POST /api/v1/users/login", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		var req struct{ Email, Password string }
		_ = json.NewDecoder(strings.NewReader(b.lastBody)).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	})
	mux.HandleFunc("GET /api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_ = json.NewEncoder(w).Encode([]model.Project{
			{ID: 1, Title: "Home", MainBoardID: 10},
		})
	})
	mux.HandleFunc("GET /api/v1/projects/1", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_ = json.NewEncoder(w).Encode(model.Project{ID: 1, Title: "Home", MainBoardID: 10})
	})
	mux.HandleFunc("GET /api/v1/kanban-columns/boards/10", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_ = json.NewEncoder(w).Encode([]model.Column{
			{ID: 2, Title: "Doing", Position: 1},
			{ID: 1, Title: "Todo", Position: 0},
		})
	})
	mux.HandleFunc("GET /api/v1/cards/project/1", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_ = json.NewEncoder(w).Encode([]model.Card{
			{ID: 7, Title: "Write docs", KanbanColumnID: 1, Position: 0},
			{ID: 8, Title: "Ship it", KanbanColumnID: 2, Position: 0, Tags: []model.Tag{{ID: 3, Name: "urgent", Color: "#FFADAD"}}},
		})
	})
	mux.HandleFunc("PATCH /api/v1/cards/7/shift", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/v1/tags/projects/1", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_ = json.NewEncoder(w).Encode(model.Tag{ID: 5, Name: "later", Color: "#A0C4FF"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, baseURL string) {
	t.Helper()
	if _, _, err := run(t, baseURL, "login", "--email", "a@b.com", "--password", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestLoginPersistsToken(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)

	out, _, err := run(t, srv.URL, "login", "--email", "a@b.com", "--password", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, `"state":"authenticated"`) {
		t.Errorf("output = %q, want authenticated state", out)
	}

	cfg, err := store.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AccessToken != "tok-123" {
		t.Errorf("persisted token = %q, want tok-123", cfg.AccessToken)
	}
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)

	_, errOut, err := run(t, srv.URL, "login", "--email", "a@b.com", "--password", "wrong")
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(errOut, "bad credentials") {
		t.Errorf("stderr = %q, want server message", errOut)
	}
}

func TestCommandsRequireLogin(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)

	_, errOut, err := run(t, srv.URL, "projects", "list")
	if err == nil {
		t.Fatal("want error before login")
	}
	if !strings.Contains(errOut, "not authenticated") {
		t.Errorf("stderr = %q, want not-authenticated hint", errOut)
	}
}

func TestProjectsListEnvelope(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)
	login(t, srv.URL)

	out, _, err := run(t, srv.URL, "projects", "list")
	if err != nil {
		t.Fatalf("projects list: %v", err)
	}
	if !strings.Contains(out, `"data":[`) || !strings.Contains(out, `"title":"Home"`) {
		t.Errorf("output = %q, want data envelope with project", out)
	}
}

func TestProjectsSelectPersists(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)
	login(t, srv.URL)

	if _, _, err := run(t, srv.URL, "projects", "select", "1"); err != nil {
		t.Fatalf("projects select: %v", err)
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SelectedProjectID != 1 {
		t.Errorf("SelectedProjectID = %d, want 1", cfg.SelectedProjectID)
	}
}

func TestCardsMoveRequestShape(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)
	login(t, srv.URL)

	if _, _, err := run(t, srv.URL, "cards", "move", "7", "--column", "2", "--position", "1"); err != nil {
		t.Fatalf("cards move: %v", err)
	}
	if backend.lastMethod != http.MethodPatch || backend.lastPath != "/api/v1/cards/7/shift" {
		t.Errorf("request = %s %s, want PATCH /api/v1/cards/7/shift", backend.lastMethod, backend.lastPath)
	}
	if backend.lastBody != `{"newColumnId":2,"newPosition":1}` {
		t.Errorf("body = %q", backend.lastBody)
	}
}

func TestTagsCreateRejectsForeignColor(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)
	login(t, srv.URL)

	_, errOut, err := run(t, srv.URL, "tags", "create", "--project", "1", "--name", "x", "--color", "#123456")
	if err == nil {
		t.Fatal("want error for color outside the palette")
	}
	if !strings.Contains(errOut, "invalid tag color") {
		t.Errorf("stderr = %q", errOut)
	}
	if backend.lastPath == "/api/v1/tags/projects/1" {
		t.Error("request reached the server despite invalid color")
	}
}

func TestTagsCreateSendsPaletteNameOnWire(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)
	login(t, srv.URL)

	for _, name := range model.TagColorNames() {
		if _, _, err := run(t, srv.URL, "tags", "create", "--project", "1", "--name", "n-"+name, "--color", name); err != nil {
			t.Fatalf("tags create --color %s: %v", name, err)
		}
		want := `"color":"` + strings.ToUpper(name) + `"`
		if !strings.Contains(backend.lastBody, want) {
			t.Errorf("body = %q, want %s", backend.lastBody, want)
		}
	}
}

func TestTagsColorNameIsCaseInsensitive(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)
	login(t, srv.URL)

	if _, _, err := run(t, srv.URL, "tags", "create", "--project", "1", "--name", "x", "--color", " Navy "); err != nil {
		t.Fatalf("mixed-case color: %v", err)
	}
	if !strings.Contains(backend.lastBody, `"color":"NAVY"`) {
		t.Errorf("body = %q, want canonical NAVY", backend.lastBody)
	}
}

func TestCardsListNeedsProject(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)
	login(t, srv.URL)

	_, errOut, err := run(t, srv.URL, "cards", "list")
	if err == nil {
		t.Fatal("want error without project")
	}
	if !strings.Contains(errOut, "no project selected") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestBoardRendersColumnsInOrder(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)
	login(t, srv.URL)

	out, _, err := run(t, srv.URL, "board", "--project", "1")
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	for _, want := range []string{"Home", "Todo (1)", "Doing (1)", "Write docs", "Ship it", "[urgent]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Todo") > strings.Index(out, "Doing") {
		t.Error("columns not sorted by position")
	}
}

func TestBoardCachedWorksOffline(t *testing.T) {
	t.Setenv("TIL_CONFIG_DIR", t.TempDir())
	backend := &kanbanBackend{}
	srv := backend.server(t)
	login(t, srv.URL)

	// Selecting mirrors the project metadata into the config; the first
	// board render populates the snapshot cache. After that the cached
	// path needs no network at all.
	if _, _, err := run(t, srv.URL, "projects", "select", "1"); err != nil {
		t.Fatalf("projects select: %v", err)
	}
	if _, _, err := run(t, srv.URL, "board"); err != nil {
		t.Fatalf("board: %v", err)
	}
	srv.Close()

	out, _, err := run(t, srv.URL, "board", "--cached")
	if err != nil {
		t.Fatalf("board --cached after server shutdown: %v", err)
	}
	for _, want := range []string{"cached", "Todo (1)", "Write docs"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
