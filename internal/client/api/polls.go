package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
)

func (c *Client) Polls(ctx context.Context, associationID string) ([]models.Poll, error) {
	var out []models.Poll
	if err := c.gw.Send(ctx, http.MethodGet, pathf("/associations/%s/polls", associationID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePoll(ctx context.Context, associationID string, in models.NewPoll) (*models.Poll, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out models.Poll
	if err := c.gw.Send(ctx, http.MethodPost, pathf("/associations/%s/polls", associationID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Vote(ctx context.Context, pollID, optionID string) (*models.Vote, error) {
	var out models.Vote
	body := map[string]string{"optionId": optionID}
	if err := c.gw.Send(ctx, http.MethodPost, pathf("/polls/%s/vote", pollID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
