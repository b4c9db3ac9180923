package api

import (
	"context"
	"fmt"
	"net/http"

	"til-cli/internal/model"
)

func (c *Client) ColumnsByBoard(ctx context.Context, boardID int64) ([]model.Column, error) {
	var out []model.Column
	path := fmt.Sprintf("/kanban-columns/boards/%d", boardID)
	if err := c.do(ctx, "columns.list", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type ColumnCreate struct {
	Title string `json:"title"`
}

func (c *Client) CreateColumn(ctx context.Context, boardID int64, req ColumnCreate) (model.Column, error) {
	var out model.Column
	path := fmt.Sprintf("/kanban-columns/boards/%d", boardID)
	err := c.do(ctx, "columns.create", http.MethodPost, path, req, &out)
	return out, err
}

type ColumnUpdate struct {
	Title *string `json:"title,omitempty"`
}

func (c *Client) UpdateColumn(ctx context.Context, columnID int64, req ColumnUpdate) (model.Column, error) {
	var out model.Column
	err := c.do(ctx, "columns.update", http.MethodPut, fmt.Sprintf("/kanban-columns/%d", columnID), req, &out)
	return out, err
}

// ReorderColumns replaces the board's column order with the given id
// sequence. The server reassigns positions from the array order.
func (c *Client) ReorderColumns(ctx context.Context, boardID int64, columnIDs []int64) error {
	path := fmt.Sprintf("/kanban-columns/boards/%d/positions", boardID)
	return c.do(ctx, "columns.reorder", http.MethodPatch, path, columnIDs, nil)
}

func (c *Client) DeleteColumn(ctx context.Context, columnID int64) error {
	return c.do(ctx, "columns.delete", http.MethodDelete, fmt.Sprintf("/kanban-columns/%d", columnID), nil, nil)
}
