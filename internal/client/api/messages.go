package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
)

// Conversations returns the latest message of every conversation.
func (c *Client) Conversations(ctx context.Context) ([]models.Message, error) {
	var out []models.Message
	if err := c.gw.Send(ctx, http.MethodGet, "/messages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MessagesWith(ctx context.Context, userID string) ([]models.Message, error) {
	var out []models.Message
	if err := c.gw.Send(ctx, http.MethodGet, pathf("/messages/%s", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendMessage(ctx context.Context, userID, content string) (*models.Message, error) {
	var out models.Message
	body := map[string]string{"content": content}
	if err := c.gw.Send(ctx, http.MethodPost, pathf("/messages/%s", userID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
