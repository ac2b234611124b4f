package middleware

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	t.Parallel()

	if err := ValidateTitle("Landing page redesign"); err != nil {
		t.Errorf("ValidateTitle() error = %v, want nil", err)
	}
	if err := ValidateTitle(strings.Repeat("a", MaxTitleLength+1)); !errors.Is(err, ErrTitleTooLong) {
		t.Errorf("ValidateTitle(long) error = %v, want ErrTitleTooLong", err)
	}
}

func TestValidateSummary(t *testing.T) {
	t.Parallel()

	if err := ValidateSummary("Short summary"); err != nil {
		t.Errorf("ValidateSummary() error = %v, want nil", err)
	}
	if err := ValidateSummary(strings.Repeat("a", MaxSummaryLength+1)); !errors.Is(err, ErrSummaryTooLong) {
		t.Errorf("ValidateSummary(long) error = %v, want ErrSummaryTooLong", err)
	}
}

func TestValidateImageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{name: "empty is allowed", url: "", wantErr: nil},
		{name: "https", url: "https://img.example.com/cover.png", wantErr: nil},
		{name: "http", url: "http://img.example.com/cover.png", wantErr: nil},
		{name: "javascript scheme", url: "javascript:alert(1)", wantErr: ErrImageURLUnsafe},
		{name: "data scheme", url: "data:image/png;base64,AAAA", wantErr: ErrImageURLUnsafe},
		{name: "ftp scheme", url: "ftp://example.com/cover.png", wantErr: ErrImageURLUnsafe},
		{name: "no host", url: "https:///cover.png", wantErr: ErrImageURLInvalid},
		{name: "too long", url: "https://img.example.com/" + strings.Repeat("a", MaxImageURLLength), wantErr: ErrImageURLTooLong},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateImageURL(tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateImageURL(%q) error = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfileFields(t *testing.T) {
	t.Parallel()

	if err := ValidateProfileFields("A short bio", []string{"go", "sql"}); err != nil {
		t.Errorf("ValidateProfileFields() error = %v, want nil", err)
	}

	if err := ValidateProfileFields(strings.Repeat("a", MaxBioLength+1), nil); !errors.Is(err, ErrBioTooLong) {
		t.Errorf("ValidateProfileFields(long bio) error = %v, want ErrBioTooLong", err)
	}

	skills := make([]string, MaxSkills+1)
	for i := range skills {
		skills[i] = "skill"
	}
	if err := ValidateProfileFields("", skills); !errors.Is(err, ErrTooManySkills) {
		t.Errorf("ValidateProfileFields(many skills) error = %v, want ErrTooManySkills", err)
	}
}
