package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"til-cli/internal/model"
)

// recordingServer answers every request with okBody and records the last
// method, path and raw body seen.
type recordingServer struct {
	*httptest.Server
	method string
	path   string
	body   string
}

func newRecordingServer(t *testing.T, okBody string) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.method = r.Method
		rs.path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		rs.body = string(raw)
		_, _ = w.Write([]byte(okBody))
	}))
	t.Cleanup(rs.Close)
	return rs
}

func TestRoutes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func(c *Client) error
		method   string
		path     string
		wantBody string
		resp     string // stub response body; defaults to "{}"
	}{
		{
			name:   "list projects",
			call:   func(c *Client) error { _, err := c.Projects(ctx); return err },
			method: "GET", path: "/api/v1/projects",
			resp: "[]",
		},
		{
			name:   "get project",
			call:   func(c *Client) error { _, err := c.Project(ctx, 3); return err },
			method: "GET", path: "/api/v1/projects/3",
		},
		{
			name: "create project",
			call: func(c *Client) error {
				_, err := c.CreateProject(ctx, ProjectCreate{Title: "Launch", Category: "Default"})
				return err
			},
			method: "POST", path: "/api/v1/projects",
			wantBody: `{"title":"Launch","description":"","category":"Default"}`,
		},
		{
			name:   "delete project",
			call:   func(c *Client) error { return c.DeleteProject(ctx, 3) },
			method: "DELETE", path: "/api/v1/projects/3",
		},
		{
			name:   "get board",
			call:   func(c *Client) error { _, err := c.Board(ctx, 1, 2); return err },
			method: "GET", path: "/api/v1/boards/projects/1/boards/2",
		},
		{
			name:   "columns by board",
			call:   func(c *Client) error { _, err := c.ColumnsByBoard(ctx, 9); return err },
			method: "GET", path: "/api/v1/kanban-columns/boards/9",
			resp: "[]",
		},
		{
			name:   "reorder columns",
			call:   func(c *Client) error { return c.ReorderColumns(ctx, 9, []int64{3, 1, 2}) },
			method: "PATCH", path: "/api/v1/kanban-columns/boards/9/positions",
			wantBody: `[3,1,2]`,
		},
		{
			name:   "cards by project",
			call:   func(c *Client) error { _, err := c.CardsByProject(ctx, 5); return err },
			method: "GET", path: "/api/v1/cards/project/5",
			resp: "[]",
		},
		{
			name: "create card",
			call: func(c *Client) error {
				_, err := c.CreateCard(ctx, 4, CardCreate{Title: "t", Content: "c"})
				return err
			},
			method: "POST", path: "/api/v1/cards/columns/4",
		},
		{
			name:   "shift card",
			call:   func(c *Client) error { return c.ShiftCard(ctx, 7, CardShift{NewColumnID: 2, NewPosition: 1}) },
			method: "PATCH", path: "/api/v1/cards/7/shift",
			wantBody: `{"newColumnId":2,"newPosition":1}`,
		},
		{
			name:   "tags by project",
			call:   func(c *Client) error { _, err := c.TagsByProject(ctx, 5); return err },
			method: "GET", path: "/api/v1/tags/projects/5",
			resp: "[]",
		},
		{
			name:   "attach tag",
			call:   func(c *Client) error { return c.AttachTag(ctx, 7, 11) },
			method: "POST", path: "/api/v1/cards/7/tags",
			wantBody: `{"tagId":11}`,
		},
		{
			name:   "detach tag",
			call:   func(c *Client) error { return c.DetachTag(ctx, 7, 11) },
			method: "DELETE", path: "/api/v1/cards/7/tags/11",
		},
		{
			name: "signup",
			call: func(c *Client) error {
				return c.Signup(ctx, SignupRequest{Username: "u", Email: "a@b.com", Password: "x"})
			},
			method: "POST", path: "/api/v1/users/signup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			okBody := tt.resp
			if okBody == "" {
				okBody = "{}"
			}
			srv := newRecordingServer(t, okBody)
			c := New(srv.URL, staticToken("tok"))
			if err := tt.call(c); err != nil {
				t.Fatalf("call: %v", err)
			}
			if srv.method != tt.method || srv.path != tt.path {
				t.Fatalf("got %s %s, want %s %s", srv.method, srv.path, tt.method, tt.path)
			}
			if tt.wantBody != "" && srv.body != tt.wantBody {
				t.Fatalf("body = %s, want %s", srv.body, tt.wantBody)
			}
		})
	}
}

func TestProjects_DecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Project{
			{ID: 1, Title: "First", MainBoardID: 10},
			{ID: 2, Title: "Second", MainBoardID: 20},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	got, err := c.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if len(got) != 2 || got[0].Title != "First" || got[1].MainBoardID != 20 {
		t.Fatalf("unexpected decode: %+v", got)
	}
}
