// Package middleware provides HTTP middleware for the WorkHive API.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig controls which browser origins may call the API.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to make cross-origin requests.
	// Entries of the form "*.example.com" match any subdomain. An empty
	// list denies all cross-origin requests.
	AllowedOrigins []string

	// AllowedMethods are the methods advertised on preflight responses.
	AllowedMethods []string

	// AllowedHeaders are the request headers advertised on preflight responses.
	AllowedHeaders []string

	// ExposedHeaders are response headers scripts may read cross-origin.
	ExposedHeaders []string

	// AllowCredentials permits cookies and Authorization on cross-origin
	// requests. Must not be combined with a "*" origin.
	AllowCredentials bool

	// MaxAge is how long (seconds) browsers may cache a preflight result.
	MaxAge int
}

// DefaultCORSConfig returns defaults suitable for the WorkHive front end:
// no origins allowed until configured, session token and rate-limit
// headers exposed.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Request-ID",
			"Accept",
			"Accept-Language",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: 86400,
	}
}

// originMatcher resolves Origin headers against the configured allow list.
// Exact entries are checked via a set; "*." entries match by suffix.
type originMatcher struct {
	exact    map[string]struct{}
	suffixes []string
}

func newOriginMatcher(origins []string) originMatcher {
	m := originMatcher{exact: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = strings.ToLower(strings.TrimSpace(o))
		if o == "" {
			continue
		}
		if strings.HasPrefix(o, "*.") {
			m.suffixes = append(m.suffixes, strings.TrimPrefix(o, "*"))
			continue
		}
		m.exact[o] = struct{}{}
	}
	return m
}

func (m originMatcher) allows(origin string) bool {
	origin = strings.ToLower(origin)
	if _, ok := m.exact[origin]; ok {
		return true
	}
	for _, suffix := range m.suffixes {
		if !strings.HasSuffix(origin, suffix) {
			continue
		}
		// "*.workhive.app" must match "https://jobs.workhive.app" but not
		// "https://evilworkhive.app": the part before the suffix has to end
		// at a label boundary.
		head := strings.TrimSuffix(origin, suffix)
		if strings.HasSuffix(head, "://") || strings.Contains(head, ".") {
			return true
		}
	}
	return false
}

// CORS handles cross-origin request headers and preflight OPTIONS requests.
// Requests without an Origin header pass through untouched. Disallowed
// origins get a bare 403 on preflight and no CORS headers otherwise, which
// leaves the browser to block the response.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	matcher := newOriginMatcher(cfg.AllowedOrigins)
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !matcher.allows(origin) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposed != "" {
				h.Set("Access-Control-Expose-Headers", exposed)
			}

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
