package auth

import (
	"strings"
	"testing"
)

func TestGenerateSessionToken_Format(t *testing.T) {
	t.Parallel()

	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if !strings.HasPrefix(token, "whv_") {
		t.Errorf("token should have whv_ prefix, got: %s", token)
	}
	if !ValidateTokenFormat(token) {
		t.Errorf("generated token should validate, got: %s", token)
	}
}

func TestGenerateSessionToken_Uniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateSessionToken()
		if err != nil {
			t.Fatalf("GenerateSessionToken failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}

func TestValidateTokenFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid", "whv_" + strings.Repeat("ab", 32), true},
		{"empty", "", false},
		{"missing prefix", strings.Repeat("ab", 32), false},
		{"too short", "whv_abcdef", false},
		{"uppercase hex", "whv_" + strings.Repeat("AB", 32), false},
		{"wrong prefix", "pk_" + strings.Repeat("ab", 32), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTokenFormat(tt.token); got != tt.want {
				t.Errorf("ValidateTokenFormat(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
