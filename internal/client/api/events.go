package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
)

func (c *Client) Events(ctx context.Context, associationID string) ([]models.Event, error) {
	var out []models.Event
	if err := c.gw.Send(ctx, http.MethodGet, pathf("/associations/%s/events", associationID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEvent(ctx context.Context, associationID string, in models.NewEvent) (*models.Event, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out models.Event
	if err := c.gw.Send(ctx, http.MethodPost, pathf("/associations/%s/events", associationID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Participate(ctx context.Context, eventID string) (*models.EventParticipant, error) {
	var out models.EventParticipant
	if err := c.gw.Send(ctx, http.MethodPost, pathf("/events/%s/participate", eventID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
