package service

import (
	"context"
	"errors"
	"testing"
)

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc := NewAccountService(nil, nil, nil, AccountConfig{})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "missing email", email: "", password: "hunter22", wantErr: ErrMissingAuthFields},
		{name: "missing password", email: "ada@example.com", password: "", wantErr: ErrMissingAuthFields},
		{name: "short password", email: "ada@example.com", password: "abc", wantErr: ErrWeakPassword},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := svc.Register(context.Background(), RegisterInput{
				Email:    tt.email,
				Password: tt.password,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	t.Parallel()

	svc := NewAccountService(nil, nil, nil, AccountConfig{})

	if _, _, err := svc.Login(context.Background(), "", "hunter22"); !errors.Is(err, ErrMissingAuthFields) {
		t.Errorf("Login(no email) error = %v, want ErrMissingAuthFields", err)
	}
	if _, _, err := svc.Login(context.Background(), "ada@example.com", ""); !errors.Is(err, ErrMissingAuthFields) {
		t.Errorf("Login(no password) error = %v, want ErrMissingAuthFields", err)
	}
}

func TestGoogleAuthURL_NotConfigured(t *testing.T) {
	t.Parallel()

	svc := NewAccountService(nil, nil, nil, AccountConfig{})

	if _, err := svc.GoogleAuthURL("state-1"); !errors.Is(err, ErrOAuthNotConfigured) {
		t.Errorf("GoogleAuthURL() error = %v, want ErrOAuthNotConfigured", err)
	}
}

func TestGoogleAuthURL_Configured(t *testing.T) {
	t.Parallel()

	svc := NewAccountService(nil, nil, nil, AccountConfig{
		BaseURL:            "https://api.workhive.app/",
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
	})

	url, err := svc.GoogleAuthURL("state-1")
	if err != nil {
		t.Fatalf("GoogleAuthURL() error = %v", err)
	}
	if url == "" {
		t.Fatal("GoogleAuthURL() returned empty URL")
	}
}

func TestLogout_IgnoresMalformedToken(t *testing.T) {
	t.Parallel()

	svc := NewAccountService(nil, nil, nil, AccountConfig{})

	// Malformed tokens never reach the session store, so a nil cache is safe.
	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Errorf("Logout(malformed) error = %v, want nil", err)
	}
}
