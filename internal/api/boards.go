package api

import (
	"context"
	"fmt"
	"net/http"

	"til-cli/internal/model"
)

func (c *Client) Board(ctx context.Context, projectID, boardID int64) (model.Board, error) {
	var out model.Board
	path := fmt.Sprintf("/boards/projects/%d/boards/%d", projectID, boardID)
	err := c.do(ctx, "boards.get", http.MethodGet, path, nil, &out)
	return out, err
}

type BoardCreate struct {
	Title string `json:"title"`
}

func (c *Client) CreateBoard(ctx context.Context, projectID int64, req BoardCreate) (model.Board, error) {
	var out model.Board
	path := fmt.Sprintf("/boards/projects/%d/boards", projectID)
	err := c.do(ctx, "boards.create", http.MethodPost, path, req, &out)
	return out, err
}

type BoardUpdate struct {
	Title *string `json:"title,omitempty"`
}

func (c *Client) UpdateBoard(ctx context.Context, boardID int64, req BoardUpdate) (model.Board, error) {
	var out model.Board
	err := c.do(ctx, "boards.update", http.MethodPut, fmt.Sprintf("/boards/%d", boardID), req, &out)
	return out, err
}

func (c *Client) DeleteBoard(ctx context.Context, boardID int64) error {
	return c.do(ctx, "boards.delete", http.MethodDelete, fmt.Sprintf("/boards/%d", boardID), nil, nil)
}
