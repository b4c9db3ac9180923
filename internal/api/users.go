package api

import (
	"context"
	"net/http"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token the session persists. The
// backend includes user fields alongside; only what the client uses is
// decoded.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Login does not attach a bearer token (there is none yet); the client
// simply has nothing to attach while the token source is empty.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, "users.login", http.MethodPost, "/users/login", req, &out)
	return out, err
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, "users.signup", http.MethodPost, "/users/signup", req, nil)
}
