// Package model defines domain entities for the application.
package model

import (
	"strings"
	"time"
)

// Job represents a single job posting.
//
// Ownership is keyed by email, not user ID: postings and acceptances are
// matched against a viewer by their email address. OwnerUID is carried
// alongside for profile lookups only.
type Job struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	PostedBy   string    `json:"postedBy"`
	Category   string    `json:"category"`
	Summary    string    `json:"summary"`
	CoverImage string    `json:"coverImage,omitempty"`
	OwnerEmail string    `json:"ownerEmail"`
	OwnerUID   string    `json:"ownerUid,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the job belongs to the given email.
// Comparison is case-insensitive since emails are.
func (j *Job) OwnedBy(email string) bool {
	return email != "" && strings.EqualFold(j.OwnerEmail, email)
}

// Matches reports whether the job matches a free-text search term.
// The match is a case-insensitive substring check across title,
// poster name and summary.
func (j *Job) Matches(term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(j.Title), needle) ||
		strings.Contains(strings.ToLower(j.PostedBy), needle) ||
		strings.Contains(strings.ToLower(j.Summary), needle)
}
