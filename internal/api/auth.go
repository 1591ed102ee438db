package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ssegura/abasto/internal/models"
)

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// LoginData is the success payload of POST /auth/login.
type LoginData struct {
	Token    string    `json:"token"`
	Expires  time.Time `json:"expires"`
	Verified bool      `json:"verified"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginData, error) {
	var data LoginData
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &data); err != nil {
		return LoginData{}, err
	}
	return data, nil
}

// Me fetches the profile of the token's owner.
func (c *Client) Me(ctx context.Context, token string) (models.User, error) {
	var data struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &data); err != nil {
		return models.User{}, err
	}
	return data.User, nil
}

// CheckSession asks the server whether the token is still accepted.
func (c *Client) CheckSession(ctx context.Context, token string) (bool, error) {
	var data struct {
		Valid bool `json:"valid"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/session", token, nil, &data); err != nil {
		return false, err
	}
	return data.Valid, nil
}

// Logout revokes the token server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}
