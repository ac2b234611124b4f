package analytics

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateVisitorHash_Deterministic(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"
	userAgent := "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	viewedAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	hash1 := GenerateVisitorHash(ip, userAgent, viewedAt)
	hash2 := GenerateVisitorHash(ip, userAgent, viewedAt)

	if hash1 != hash2 {
		t.Error("Same inputs should produce same hash")
	}

	// Hash should be 16 hex chars
	if len(hash1) != 16 {
		t.Errorf("Hash length = %d, want 16", len(hash1))
	}
}

func TestGenerateVisitorHash_DailyRotation(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"
	userAgent := "Mozilla/5.0"

	day1 := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC) // Next day

	hash1 := GenerateVisitorHash(ip, userAgent, day1)
	hash2 := GenerateVisitorHash(ip, userAgent, day2)

	if hash1 == hash2 {
		t.Error("Hashes should differ across days (daily salt rotation)")
	}
}

func TestGenerateVisitorHash_SameDayDifferentTime(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"
	userAgent := "Mozilla/5.0"

	morning := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 1, 15, 20, 0, 0, 0, time.UTC)

	hash1 := GenerateVisitorHash(ip, userAgent, morning)
	hash2 := GenerateVisitorHash(ip, userAgent, evening)

	if hash1 != hash2 {
		t.Error("Hashes should match within the same UTC day")
	}
}

func TestGenerateVisitorHash_DifferentInputs(t *testing.T) {
	t.Parallel()

	viewedAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	base := GenerateVisitorHash("192.168.1.100", "Mozilla/5.0", viewedAt)
	otherIP := GenerateVisitorHash("192.168.1.101", "Mozilla/5.0", viewedAt)
	otherUA := GenerateVisitorHash("192.168.1.100", "curl/8.0", viewedAt)

	if base == otherIP {
		t.Error("Different IPs should produce different hashes")
	}
	if base == otherUA {
		t.Error("Different user agents should produce different hashes")
	}
}

func TestSanitizeReferrer_StripQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "query params stripped",
			input: "https://example.com/page?utm_source=x&utm_campaign=y",
			want:  "https://example.com/page",
		},
		{
			name:  "fragment stripped",
			input: "https://example.com/page#section",
			want:  "https://example.com/page",
		},
		{
			name:  "path preserved",
			input: "https://example.com/jobs/listing",
			want:  "https://example.com/jobs/listing",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeReferrer(tt.input); got != tt.want {
				t.Errorf("SanitizeReferrer(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeReferrer_Empty(t *testing.T) {
	t.Parallel()

	if got := SanitizeReferrer(""); got != "" {
		t.Errorf("SanitizeReferrer(\"\") = %q, want empty", got)
	}
}

func TestSanitizeReferrer_Truncate(t *testing.T) {
	t.Parallel()

	long := "https://example.com/" + strings.Repeat("a", 600)
	got := SanitizeReferrer(long)
	if len(got) > 500 {
		t.Errorf("len = %d, want <= 500", len(got))
	}
}

func TestExtractCountryCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"US", "US"},
		{"vn", "VN"},
		{"", ""},
		{"USA", ""},
		{"X", ""},
	}

	for _, tt := range tests {
		if got := ExtractCountryCode(tt.input); got != tt.want {
			t.Errorf("ExtractCountryCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncateUserAgent(t *testing.T) {
	t.Parallel()

	short := "Mozilla/5.0"
	if got := TruncateUserAgent(short); got != short {
		t.Errorf("TruncateUserAgent(%q) = %q", short, got)
	}

	long := strings.Repeat("x", 600)
	if got := TruncateUserAgent(long); len(got) != 500 {
		t.Errorf("truncated length = %d, want 500", len(got))
	}
}
