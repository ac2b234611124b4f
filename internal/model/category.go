package model

import "time"

// Category is a labeled grouping for jobs. Any authenticated user may
// create categories while authoring a job; deleting one does not touch
// jobs that reference it, so jobs can carry a category title with no
// backing Category record (legacy free-text categories).
type Category struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image,omitempty"`
	UserID    string    `json:"userId"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}
