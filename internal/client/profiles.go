package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/workhive/workhive/internal/model"
)

// ProfileFields is the whole-record replacement payload for a profile.
type ProfileFields struct {
	DisplayName string   `json:"displayName"`
	PhotoURL    string   `json:"photoURL,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Skills      []string `json:"skills"`
	Location    string   `json:"location,omitempty"`
}

// GetProfile resolves a profile by user ID or email. Users who never
// saved a profile resolve to an empty record, not an error.
func (c *Client) GetProfile(ctx context.Context, uidOrEmail string) (*model.Profile, error) {
	var envelope struct {
		Data *model.Profile `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/profile/"+url.PathEscape(uidOrEmail), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// UpdateProfile fully replaces the viewer's own profile.
func (c *Client) UpdateProfile(ctx context.Context, uidOrEmail string, fields ProfileFields) (*model.Profile, error) {
	var envelope struct {
		Data *model.Profile `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/v1/users/profile/"+url.PathEscape(uidOrEmail), fields, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}
