package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
)

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.gw.Send(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, reg models.Registration) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.gw.Send(ctx, http.MethodPost, "/auth/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword asks the server to issue a reset code for the account.
func (c *Client) ForgotPassword(ctx context.Context, req models.PasswordResetRequest) error {
	return c.gw.Send(ctx, http.MethodPost, "/auth/forgot-password", req, nil)
}

func (c *Client) ResetPassword(ctx context.Context, req models.PasswordReset) error {
	return c.gw.Send(ctx, http.MethodPost, "/auth/reset-password", req, nil)
}

// Me returns the identity the server associates with the held credential.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.gw.Send(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.gw.Send(ctx, http.MethodGet, "/health", nil, nil)
}
