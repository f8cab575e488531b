package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

// ErrNoToken indicates a login response that did not carry a token.
var ErrNoToken = errors.New("no token in login response")

// Login authenticates and returns the issued bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	raw, err := c.Do(ctx, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   loginRequest{Username: username, Password: password},
	})
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", ErrNoToken
	}
	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Token == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}

// Register creates a regular user account.
func (c *Client) Register(ctx context.Context, username, password, email string) error {
	_, err := c.Do(ctx, "/auth/register", RequestOptions{
		Method: http.MethodPost,
		Body:   registerRequest{Username: username, Password: password, Email: email},
	})
	return err
}

// RegisterWithRole creates an account with an explicit role via the admin
// registration endpoint.
func (c *Client) RegisterWithRole(ctx context.Context, username, password, email, role string) error {
	_, err := c.Do(ctx, "/auth/admin/register", RequestOptions{
		Method: http.MethodPost,
		Body:   registerRequest{Username: username, Password: password, Email: email, Role: role},
	})
	return err
}
