// Package dto provides Data Transfer Objects for API requests and responses.
//
// Response envelopes are deliberately not uniform across endpoint
// families; each family keeps the shape its consumers already parse.
// The client package normalizes them back into plain values.
package dto

import "github.com/workhive/workhive/internal/model"

// CreateJobRequest represents the request body for creating a job posting.
type CreateJobRequest struct {
	Title      string `json:"title"`
	PostedBy   string `json:"postedBy"`
	Category   string `json:"category"`
	Summary    string `json:"summary"`
	CoverImage string `json:"coverImage,omitempty"`
}

// UpdateJobRequest represents the request body for updating a job posting.
// Only the mutable fields appear; owner and timestamps never change.
type UpdateJobRequest struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	Summary    string `json:"summary"`
	CoverImage string `json:"coverImage,omitempty"`
}

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

// AcceptJobRequest represents the request body for accepting a job.
type AcceptJobRequest struct {
	JobID string `json:"jobId"`
}

// UpdateProfileRequest is the whole-record replacement body for a profile.
type UpdateProfileRequest struct {
	DisplayName string   `json:"displayName"`
	PhotoURL    string   `json:"photoURL,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Skills      []string `json:"skills"`
	Location    string   `json:"location,omitempty"`
}

// RegisterRequest represents the request body for creating an account.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// LoginRequest represents the request body for password sign-in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login with a fresh session token.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// JobsEnvelope wraps the recent-jobs list.
type JobsEnvelope struct {
	Jobs []*model.Job `json:"jobs"`
}

// SuccessEnvelope wraps responses in the {"success":true,"data":...} shape
// used by the job-mutation, category and profile endpoint families.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// DataEnvelope wraps responses in the bare {"data":...} shape used by the
// accepted-jobs family.
type DataEnvelope struct {
	Data any `json:"data"`
}

// AcceptedEnvelope is the response of the acceptance existence check.
type AcceptedEnvelope struct {
	Accepted bool `json:"accepted"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
