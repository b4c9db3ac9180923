package api

import (
	"context"
	"fmt"
	"net/http"

	"til-cli/internal/model"
)

func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.do(ctx, "projects.list", http.MethodGet, "/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Project(ctx context.Context, id int64) (model.Project, error) {
	var out model.Project
	err := c.do(ctx, "projects.get", http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &out)
	return out, err
}

type ProjectCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (c *Client) CreateProject(ctx context.Context, req ProjectCreate) (model.Project, error) {
	var out model.Project
	err := c.do(ctx, "projects.create", http.MethodPost, "/projects", req, &out)
	return out, err
}

// ProjectUpdate carries only the fields being changed; nil pointers are
// omitted from the wire body.
type ProjectUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

func (c *Client) UpdateProject(ctx context.Context, id int64, req ProjectUpdate) (model.Project, error) {
	var out model.Project
	err := c.do(ctx, "projects.update", http.MethodPut, fmt.Sprintf("/projects/%d", id), req, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, "projects.delete", http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}
