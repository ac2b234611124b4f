// Package middleware provides HTTP middleware for the WorkHive API.
package middleware

import (
	"errors"
	"net/url"
	"strings"
)

// Input limits enforced at the request boundary.
const (
	// MaxTitleLength is the maximum length for job and category titles.
	MaxTitleLength = 200

	// MaxSummaryLength is the maximum length for a job summary.
	MaxSummaryLength = 5000

	// MaxImageURLLength is the maximum length for cover image and photo URLs.
	MaxImageURLLength = 2048

	// MaxBioLength is the maximum length for a profile bio.
	MaxBioLength = 2000

	// MaxSkills is the maximum number of skills on a profile.
	MaxSkills = 20
)

// Validation errors.
var (
	ErrTitleTooLong    = errors.New("title exceeds maximum length")
	ErrSummaryTooLong  = errors.New("summary exceeds maximum length")
	ErrImageURLTooLong = errors.New("image URL exceeds maximum length")
	ErrImageURLInvalid = errors.New("image URL is invalid")
	ErrImageURLUnsafe  = errors.New("image URL uses unsafe scheme")
	ErrBioTooLong      = errors.New("bio exceeds maximum length")
	ErrTooManySkills   = errors.New("too many skills")
)

// ValidateTitle checks job and category title length.
func ValidateTitle(title string) error {
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// ValidateSummary checks job summary length.
func ValidateSummary(summary string) error {
	if len(summary) > MaxSummaryLength {
		return ErrSummaryTooLong
	}
	return nil
}

// ValidateImageURL checks a user-supplied image URL. Empty is allowed;
// images are optional everywhere. Only http and https schemes are
// accepted so stored URLs are never script-bearing.
func ValidateImageURL(raw string) error {
	if raw == "" {
		return nil
	}

	if len(raw) > MaxImageURLLength {
		return ErrImageURLTooLong
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ErrImageURLInvalid
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return ErrImageURLUnsafe
	}

	if u.Host == "" {
		return ErrImageURLInvalid
	}

	return nil
}

// ValidateProfileFields checks the free-form profile fields.
func ValidateProfileFields(bio string, skills []string) error {
	if len(bio) > MaxBioLength {
		return ErrBioTooLong
	}
	if len(skills) > MaxSkills {
		return ErrTooManySkills
	}
	return nil
}
