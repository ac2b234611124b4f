package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func corsRequest(t *testing.T, cfg CORSConfig, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	handler := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/api/v1/jobs/recent-jobs", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORS_OriginHandling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		origins    []string
		origin     string
		method     string
		wantStatus int
		wantAllow  string
	}{
		{
			name:       "empty allow list denies everything",
			origins:    nil,
			origin:     "https://workhive.app",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantAllow:  "",
		},
		{
			name:       "configured origin is echoed back",
			origins:    []string{"https://workhive.app"},
			origin:     "https://workhive.app",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantAllow:  "https://workhive.app",
		},
		{
			name:       "unknown origin preflight rejected",
			origins:    []string{"https://workhive.app"},
			origin:     "https://evil.example",
			method:     http.MethodOptions,
			wantStatus: http.StatusForbidden,
			wantAllow:  "",
		},
		{
			name:       "allowed preflight short-circuits with 204",
			origins:    []string{"https://workhive.app"},
			origin:     "https://workhive.app",
			method:     http.MethodOptions,
			wantStatus: http.StatusNoContent,
			wantAllow:  "https://workhive.app",
		},
		{
			name:       "origin comparison is case insensitive",
			origins:    []string{"HTTPS://WORKHIVE.APP"},
			origin:     "https://workhive.app",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantAllow:  "https://workhive.app",
		},
		{
			name:       "same-origin request untouched",
			origins:    []string{"https://workhive.app"},
			origin:     "",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantAllow:  "",
		},
		{
			name:       "wildcard matches subdomain",
			origins:    []string{"*.workhive.app"},
			origin:     "https://staging.workhive.app",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantAllow:  "https://staging.workhive.app",
		},
		{
			name:       "wildcard does not match suffix lookalike",
			origins:    []string{"*.workhive.app"},
			origin:     "https://notworkhive.app",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantAllow:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultCORSConfig()
			cfg.AllowedOrigins = tt.origins

			rec := corsRequest(t, cfg, tt.method, tt.origin)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestCORS_PreflightAdvertisesPolicy(t *testing.T) {
	t.Parallel()

	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://workhive.app"}

	rec := corsRequest(t, cfg, http.MethodOptions, "https://workhive.app")

	for _, header := range []string{
		"Access-Control-Allow-Methods",
		"Access-Control-Allow-Headers",
		"Access-Control-Max-Age",
	} {
		if rec.Header().Get(header) == "" {
			t.Errorf("%s not set on preflight", header)
		}
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("Access-Control-Max-Age = %q, want %q", got, "86400")
	}
}

func TestCORS_ExposesRateLimitHeaders(t *testing.T) {
	t.Parallel()

	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://workhive.app"}

	rec := corsRequest(t, cfg, http.MethodGet, "https://workhive.app")

	exposed := rec.Header().Get("Access-Control-Expose-Headers")
	for _, want := range []string{"X-RateLimit-Remaining", "X-RateLimit-Reset", "X-Request-ID"} {
		if !headerListContains(exposed, want) {
			t.Errorf("Expose-Headers %q missing %q", exposed, want)
		}
	}
}

func headerListContains(list, name string) bool {
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == name {
			return true
		}
	}
	return false
}
