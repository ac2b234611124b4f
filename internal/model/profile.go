package model

import "time"

// Profile holds a user's extended attributes, separate from the
// identity record. Profiles are created implicitly with empty values
// and may only be updated by their owner.
type Profile struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Skills      []string  `json:"skills"`
	Location    string    `json:"location,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
