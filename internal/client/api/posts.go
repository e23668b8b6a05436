package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
)

func (c *Client) Posts(ctx context.Context, associationID string) ([]models.Post, error) {
	var out []models.Post
	if err := c.gw.Send(ctx, http.MethodGet, pathf("/associations/%s/posts", associationID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePost(ctx context.Context, associationID string, in models.NewPost) (*models.Post, error) {
	if err := c.check(in); err != nil {
		return nil, err
	}
	var out models.Post
	if err := c.gw.Send(ctx, http.MethodPost, pathf("/associations/%s/posts", associationID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Comment(ctx context.Context, postID, content string) (*models.Comment, error) {
	var out models.Comment
	body := map[string]string{"content": content}
	if err := c.gw.Send(ctx, http.MethodPost, pathf("/posts/%s/comments", postID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
