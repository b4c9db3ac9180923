package api

import (
	"context"
	"fmt"
	"net/http"

	"til-cli/internal/model"
)

func (c *Client) TagsByProject(ctx context.Context, projectID int64) ([]model.Tag, error) {
	var out []model.Tag
	path := fmt.Sprintf("/tags/projects/%d", projectID)
	if err := c.do(ctx, "tags.list", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TagCreate's Color is a palette color name; the server resolves the
// name and stores the hex code, which is what reads return.
type TagCreate struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (c *Client) CreateTag(ctx context.Context, projectID int64, req TagCreate) (model.Tag, error) {
	var out model.Tag
	path := fmt.Sprintf("/tags/projects/%d", projectID)
	err := c.do(ctx, "tags.create", http.MethodPost, path, req, &out)
	return out, err
}

type TagUpdate struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (c *Client) UpdateTag(ctx context.Context, tagID int64, req TagUpdate) (model.Tag, error) {
	var out model.Tag
	err := c.do(ctx, "tags.update", http.MethodPut, fmt.Sprintf("/tags/%d", tagID), req, &out)
	return out, err
}

func (c *Client) DeleteTag(ctx context.Context, tagID int64) error {
	return c.do(ctx, "tags.delete", http.MethodDelete, fmt.Sprintf("/tags/%d", tagID), nil, nil)
}

func (c *Client) AttachTag(ctx context.Context, cardID, tagID int64) error {
	body := struct {
		TagID int64 `json:"tagId"`
	}{TagID: tagID}
	return c.do(ctx, "cards.tags.attach", http.MethodPost, fmt.Sprintf("/cards/%d/tags", cardID), body, nil)
}

func (c *Client) DetachTag(ctx context.Context, cardID, tagID int64) error {
	return c.do(ctx, "cards.tags.detach", http.MethodDelete, fmt.Sprintf("/cards/%d/tags/%d", cardID, tagID), nil, nil)
}
