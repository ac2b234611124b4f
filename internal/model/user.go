package model

import "time"

// Auth providers.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// User represents an account identity.
// PasswordHash is empty for accounts created through a federated provider.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PhotoURL     string    `json:"photoURL,omitempty"`
	Provider     string    `json:"provider"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the authenticated-session view of a user, carried in the
// request context after the auth middleware resolves a bearer token.
// It is written only by the auth layer; everything else reads it.
type Session struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Provider    string `json:"provider"`
}
