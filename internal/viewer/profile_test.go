package viewer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/workhive/workhive/internal/client"
)

func TestProfiles_PublicBackfillsDisplayName(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "/users/profile/"):
			_, _ = w.Write([]byte(`{"success":true,"data":{"userId":"u9","email":"grace@example.com","displayName":"","skills":[]}}`))
		default:
			_, _ = w.Write([]byte(`[
				{"id":"j1","title":"API Work","postedBy":"Grace H","ownerEmail":"grace@example.com"},
				{"id":"j2","title":"Other","postedBy":"Someone","ownerEmail":"other@example.com"},
				{"id":"j3","title":"More API Work","postedBy":"Grace H","ownerEmail":"GRACE@example.com"}
			]`))
		}
	}))
	defer srv.Close()

	p := NewProfiles(client.New(srv.URL), anonymous(nil))
	pub, err := p.Public(context.Background(), "grace@example.com")
	if err != nil {
		t.Fatalf("Public() error = %v", err)
	}

	if len(pub.Jobs) != 2 {
		t.Errorf("len(Jobs) = %d, want the 2 postings owned by the email", len(pub.Jobs))
	}
	if pub.Profile.DisplayName != "Grace H" {
		t.Errorf("DisplayName = %q, want backfill from first posting", pub.Profile.DisplayName)
	}
}

func TestProfiles_PublicKeepsExplicitDisplayName(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "/users/profile/"):
			_, _ = w.Write([]byte(`{"success":true,"data":{"userId":"u9","email":"grace@example.com","displayName":"Dr. Grace","skills":[]}}`))
		default:
			_, _ = w.Write([]byte(`[{"id":"j1","title":"API Work","postedBy":"Grace H","ownerEmail":"grace@example.com"}]`))
		}
	}))
	defer srv.Close()

	p := NewProfiles(client.New(srv.URL), anonymous(nil))
	pub, err := p.Public(context.Background(), "grace@example.com")
	if err != nil {
		t.Fatalf("Public() error = %v", err)
	}
	if pub.Profile.DisplayName != "Dr. Grace" {
		t.Errorf("DisplayName = %q, want the saved value untouched", pub.Profile.DisplayName)
	}
}

func TestProfiles_PublicOwnPageUsesOwnerEndpoint(t *testing.T) {
	t.Parallel()

	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "/users/profile/"):
			_, _ = w.Write([]byte(`{"success":true,"data":{"userId":"u9","email":"grace@example.com","displayName":"Dr. Grace","skills":[]}}`))
		case strings.Contains(r.URL.Path, "/jobs/myAddedJobs/"):
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"j1","title":"API Work","postedBy":"Grace H","ownerEmail":"grace@example.com"}]}`))
		default:
			t.Errorf("unexpected request to %s; own page must not scan the catalog", r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	api := client.New(srv.URL)
	p := NewProfiles(api, signedIn(api, "u9", "grace@example.com", "Dr. Grace"))

	pub, err := p.Public(context.Background(), "grace@example.com")
	if err != nil {
		t.Fatalf("Public() error = %v", err)
	}
	if len(pub.Jobs) != 1 || pub.Jobs[0].ID != "j1" {
		t.Errorf("Jobs = %+v, want the single owned posting", pub.Jobs)
	}

	var hitOwnerEndpoint bool
	for _, path := range paths {
		if strings.Contains(path, "/jobs/myAddedJobs/grace@example.com") {
			hitOwnerEndpoint = true
		}
	}
	if !hitOwnerEndpoint {
		t.Errorf("requests = %v, want the keyed myAddedJobs lookup for the viewer's own page", paths)
	}
}

func TestProfiles_OwnRequiresSession(t *testing.T) {
	t.Parallel()

	p := NewProfiles(nil, anonymous(nil))
	if _, err := p.Own(context.Background()); err == nil {
		t.Error("Own() error = nil, want ErrSignInRequired")
	}
	if _, err := p.Update(context.Background(), client.ProfileFields{}); err == nil {
		t.Error("Update() error = nil, want ErrSignInRequired")
	}
}
