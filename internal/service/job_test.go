package service

import (
	"context"
	"errors"
	"testing"
)

func TestCreateJob_RequiredFields(t *testing.T) {
	t.Parallel()

	svc := NewJobService(nil, nil, 0)

	valid := CreateJobInput{
		Title:      "Landing page redesign",
		PostedBy:   "Ada Lovelace",
		Category:   "Web Dev",
		Summary:    "Refresh the marketing site",
		OwnerEmail: "ada@example.com",
	}

	tests := []struct {
		name   string
		mutate func(*CreateJobInput)
	}{
		{name: "missing title", mutate: func(in *CreateJobInput) { in.Title = "" }},
		{name: "whitespace title", mutate: func(in *CreateJobInput) { in.Title = "   " }},
		{name: "missing postedBy", mutate: func(in *CreateJobInput) { in.PostedBy = "" }},
		{name: "missing category", mutate: func(in *CreateJobInput) { in.Category = "" }},
		{name: "missing summary", mutate: func(in *CreateJobInput) { in.Summary = "" }},
		{name: "missing owner email", mutate: func(in *CreateJobInput) { in.OwnerEmail = "" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			input := valid
			tt.mutate(&input)

			_, err := svc.CreateJob(context.Background(), input)
			if !errors.Is(err, ErrMissingJobFields) {
				t.Errorf("CreateJob() error = %v, want ErrMissingJobFields", err)
			}
		})
	}
}

func TestHasEmptyField(t *testing.T) {
	t.Parallel()

	if hasEmptyField("a", "b", "c") {
		t.Error("hasEmptyField() = true for all non-empty values")
	}
	if !hasEmptyField("a", "", "c") {
		t.Error("hasEmptyField() = false with an empty value present")
	}
	if !hasEmptyField("a", "  ", "c") {
		t.Error("hasEmptyField() = false with a whitespace-only value present")
	}
}
