package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/workhive/workhive/internal/model"
)

// categoryEnvelope is the {"success":true,"data":...} shape of the
// category endpoint family.
type categoryEnvelope struct {
	Data []*model.Category `json:"data"`
}

// AllCategories fetches the global category list.
func (c *Client) AllCategories(ctx context.Context) ([]*model.Category, error) {
	var envelope categoryEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/v1/category/all-categories", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// UserCategories fetches categories created by one user.
func (c *Client) UserCategories(ctx context.Context, uid string) ([]*model.Category, error) {
	var envelope categoryEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/v1/category/user-categories/"+url.PathEscape(uid), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// AddCategory creates a category; the server derives its slug.
func (c *Client) AddCategory(ctx context.Context, title, image string) (*model.Category, error) {
	body := map[string]string{"title": title}
	if image != "" {
		body["image"] = image
	}

	var envelope struct {
		Data *model.Category `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/category/add-category", body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// DeleteCategory removes a category the viewer created.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/category/delete-category/"+url.PathEscape(id), nil, nil)
}
