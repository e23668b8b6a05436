// Package api offers typed wrappers for the association platform REST API.
//
// Every call is routed through a gateway, so authorization and error
// normalization happen in one place. The package never stores credentials:
// Login and Register return the token and leave persisting it to the caller.
package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
)

// Sender performs one JSON round trip against the API.
type Sender interface {
	Send(ctx context.Context, method, path string, in, out any) error
}

type Client struct {
	gw       Sender
	validate *validator.Validate
}

func New(gw Sender) *Client {
	return &Client{gw: gw, validate: validator.New()}
}

func (c *Client) check(v any) error {
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func pathf(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}
