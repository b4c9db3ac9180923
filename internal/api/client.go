package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const basePath = "/api/v1"

// TokenSource yields the current bearer token, or "" when the session is
// unauthenticated. The session owns the token; the client only reads it
// per request.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a func to a TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client is a thin typed wrapper over the TIL REST API. It attaches the
// bearer token when one is present and maps failures onto the Error
// taxonomy. No caching, no batching, no retries.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + basePath,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// do issues one request. body (when non-nil) is JSON-encoded; out (when
// non-nil) receives the decoded response body.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindNetwork, Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(op, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) statusError(op string, resp *http.Response) error {
	kind := KindValidation
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		kind = KindAuth
	case resp.StatusCode >= 500:
		kind = KindServer
	}

	// The backend reports failures as {"message": "..."}; tolerate
	// anything else.
	var wire struct {
		Message string `json:"message"`
	}
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		_ = json.Unmarshal(raw, &wire)
	}
	return &Error{Kind: kind, Status: resp.StatusCode, Message: strings.TrimSpace(wire.Message), Op: op}
}
