package client

import (
	"context"
	"net/http"

	"github.com/workhive/workhive/internal/model"
)

// Credentials is the payload for password sign-in and registration.
type Credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// authResponse is the token-bearing response of register and login.
type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates an account and adopts its session token.
func (c *Client) Register(ctx context.Context, creds Credentials) (*model.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", creds, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return resp.User, nil
}

// Login signs in with password credentials and adopts the session token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var resp authResponse
	body := Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return resp.User, nil
}

// Logout revokes the current session and clears the token. The token
// is cleared even when the server call fails; the viewer is signed out
// locally regardless.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

// Me resolves the current token back into its session. Used at startup
// to restore a persisted sign-in.
func (c *Client) Me(ctx context.Context) (*model.Session, error) {
	var sess model.Session
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
