package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func securedResponse(t *testing.T, cfg SecurityConfig) *httptest.ResponseRecorder {
	t.Helper()

	handler := Security(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/recent-jobs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSecurity_BaseHeaders(t *testing.T) {
	t.Parallel()

	rec := securedResponse(t, DefaultSecurityConfig())

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "0",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
		"Cache-Control":           "no-store",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	if rec.Header().Get("Permissions-Policy") == "" {
		t.Error("Permissions-Policy not set")
	}
}

func TestSecurity_HSTS(t *testing.T) {
	t.Parallel()

	t.Run("enabled in production", func(t *testing.T) {
		t.Parallel()
		rec := securedResponse(t, DefaultSecurityConfig())
		got := rec.Header().Get("Strict-Transport-Security")
		if !strings.Contains(got, "max-age=31536000") {
			t.Errorf("Strict-Transport-Security = %q, want max-age=31536000", got)
		}
		if !strings.Contains(got, "includeSubDomains") {
			t.Errorf("Strict-Transport-Security = %q, want includeSubDomains", got)
		}
	})

	t.Run("disabled in development", func(t *testing.T) {
		t.Parallel()
		rec := securedResponse(t, SecurityConfig{IsDevelopment: true})
		if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
			t.Errorf("Strict-Transport-Security = %q, want unset in dev", got)
		}
	})
}

func TestMaxBodySize(t *testing.T) {
	t.Parallel()

	handler := MaxBodySize(64)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("small body passes", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/add-job", strings.NewReader(`{"title":"Fix sink"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("declared oversize rejected with error envelope", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/add-job", strings.NewReader(strings.Repeat("x", 200)))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
		}
		var body struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("response not JSON: %v", err)
		}
		if body.Code != "PAYLOAD_TOO_LARGE" {
			t.Errorf("code = %q, want PAYLOAD_TOO_LARGE", body.Code)
		}
	})

	t.Run("streamed oversize cut off mid-read", func(t *testing.T) {
		t.Parallel()
		// No Content-Length, so the handler only notices via MaxBytesReader.
		req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/add-job", io.NopCloser(strings.NewReader(strings.Repeat("x", 200))))
		req.ContentLength = -1
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
		}
	})
}
