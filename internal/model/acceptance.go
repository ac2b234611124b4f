package model

import "time"

// Acceptance records one user's commitment to perform a job.
//
// Job fields are denormalized into the record at accept time so the
// accepted-tasks view survives later edits or deletion of the posting.
// At most one acceptance may exist per (JobID, AcceptedByEmail) pair.
type Acceptance struct {
	ID              string    `json:"id"`
	JobID           string    `json:"jobId"`
	Title           string    `json:"title"`
	PostedBy        string    `json:"postedBy"`
	PostedByEmail   string    `json:"postedByEmail"`
	Category        string    `json:"category"`
	Summary         string    `json:"summary"`
	CoverImage      string    `json:"coverImage,omitempty"`
	AcceptedBy      string    `json:"acceptedBy"`
	AcceptedByEmail string    `json:"acceptedByEmail"`
	AcceptedAt      time.Time `json:"acceptedAt"`
}

// AcceptanceSnapshot builds an acceptance record from the currently
// loaded job plus the accepting viewer's identity.
func AcceptanceSnapshot(job *Job, displayName, email string) *Acceptance {
	return &Acceptance{
		JobID:           job.ID,
		Title:           job.Title,
		PostedBy:        job.PostedBy,
		PostedByEmail:   job.OwnerEmail,
		Category:        job.Category,
		Summary:         job.Summary,
		CoverImage:      job.CoverImage,
		AcceptedBy:      displayName,
		AcceptedByEmail: email,
	}
}
