package api

import (
	"context"
	"fmt"
	"net/http"

	"til-cli/internal/model"
)

func (c *Client) CardsByProject(ctx context.Context, projectID int64) ([]model.Card, error) {
	var out []model.Card
	path := fmt.Sprintf("/cards/project/%d", projectID)
	if err := c.do(ctx, "cards.list", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type CardCreate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *Client) CreateCard(ctx context.Context, columnID int64, req CardCreate) (model.Card, error) {
	var out model.Card
	path := fmt.Sprintf("/cards/columns/%d", columnID)
	err := c.do(ctx, "cards.create", http.MethodPost, path, req, &out)
	return out, err
}

type CardUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (c *Client) UpdateCard(ctx context.Context, cardID int64, req CardUpdate) (model.Card, error) {
	var out model.Card
	err := c.do(ctx, "cards.update", http.MethodPut, fmt.Sprintf("/cards/%d", cardID), req, &out)
	return out, err
}

// CardShift relocates a card to a new column and slot.
type CardShift struct {
	NewColumnID int64 `json:"newColumnId"`
	NewPosition int   `json:"newPosition"`
}

func (c *Client) ShiftCard(ctx context.Context, cardID int64, req CardShift) error {
	return c.do(ctx, "cards.shift", http.MethodPatch, fmt.Sprintf("/cards/%d/shift", cardID), req, nil)
}

func (c *Client) DeleteCard(ctx context.Context, cardID int64) error {
	return c.do(ctx, "cards.delete", http.MethodDelete, fmt.Sprintf("/cards/%d", cardID), nil, nil)
}
