package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
)

func (c *Client) Associations(ctx context.Context) ([]models.Association, error) {
	var out []models.Association
	if err := c.gw.Send(ctx, http.MethodGet, "/associations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Association(ctx context.Context, id string) (*models.Association, error) {
	var out models.Association
	if err := c.gw.Send(ctx, http.MethodGet, pathf("/associations/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAssociation(ctx context.Context, in models.NewAssociation) (*models.Association, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out models.Association
	if err := c.gw.Send(ctx, http.MethodPost, "/associations", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JoinAssociation requests membership; the server decides its status.
func (c *Client) JoinAssociation(ctx context.Context, id string) (*models.Membership, error) {
	var out models.Membership
	if err := c.gw.Send(ctx, http.MethodPost, pathf("/associations/%s/join", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
