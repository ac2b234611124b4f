package viewer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/workhive/workhive/internal/client"
	"github.com/workhive/workhive/internal/model"
)

func TestTasks_LoadEmptyOn404(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"No accepted jobs found","code":"NO_ACCEPTED_JOBS"}`))
	}))
	defer srv.Close()

	api := client.New(srv.URL)
	tasks := NewTasks(api, signedIn(api, "u1", "ada@example.com", "Ada"))

	if err := tasks.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v, want nil for zero acceptances", err)
	}
	if got := tasks.Items(); len(got) != 0 {
		t.Errorf("Items() = %v, want empty", got)
	}
	if tasks.Err() != nil {
		t.Errorf("Err() = %v, want nil", tasks.Err())
	}
}

func TestTasks_MarkDoneRemovesExactlyThatItem(t *testing.T) {
	t.Parallel()

	var deletedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deletedPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	api := client.New(srv.URL)
	tasks := NewTasks(api, signedIn(api, "u1", "ada@example.com", "Ada"))
	tasks.items = []*model.Acceptance{
		{ID: "a1", JobID: "j1"},
		{ID: "a2", JobID: "j2"},
		{ID: "a3", JobID: "j3"},
	}

	if err := tasks.MarkDone(context.Background(), "a2"); err != nil {
		t.Fatalf("MarkDone() error = %v", err)
	}

	if deletedPath != "/api/v1/accepted-jobs/remove-accepted-job/a2" {
		t.Errorf("deleted path = %q", deletedPath)
	}
	got := tasks.Items()
	if len(got) != 2 || got[0].ID != "a1" || got[1].ID != "a3" {
		t.Errorf("Items() after MarkDone = %+v, want a1 and a3 only", got)
	}
}

func TestTasks_CancelRequiresConfirmation(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	api := client.New(srv.URL)
	tasks := NewTasks(api, signedIn(api, "u1", "ada@example.com", "Ada"))
	tasks.items = []*model.Acceptance{{ID: "a1"}}

	err := tasks.Cancel(context.Background(), "a1", func() bool { return false })
	if !errors.Is(err, ErrConfirmationDeclined) {
		t.Fatalf("Cancel() declined error = %v, want ErrConfirmationDeclined", err)
	}
	if n := requests.Load(); n != 0 {
		t.Fatalf("server saw %d requests after declined confirmation, want 0", n)
	}
	if len(tasks.Items()) != 1 {
		t.Fatal("item removed despite declined confirmation")
	}

	if err := tasks.Cancel(context.Background(), "a1", func() bool { return true }); err != nil {
		t.Fatalf("Cancel() confirmed error = %v", err)
	}
	if len(tasks.Items()) != 0 {
		t.Error("item not removed after confirmed cancel")
	}
}

func TestTasks_LoadFailureClearsItems(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			_, _ = w.Write([]byte(`{"data":[{"id":"a1","jobId":"j1"}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"An internal error occurred","code":"INTERNAL_ERROR"}`))
	}))
	defer srv.Close()

	api := client.New(srv.URL)
	tasks := NewTasks(api, signedIn(api, "u1", "ada@example.com", "Ada"))

	if err := tasks.Load(context.Background()); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	if len(tasks.Items()) != 1 {
		t.Fatalf("Items() after first Load = %d item(s), want 1", len(tasks.Items()))
	}

	if err := tasks.Load(context.Background()); err == nil {
		t.Fatal("second Load() error = nil, want server failure surfaced")
	}
	if got := tasks.Items(); len(got) != 0 {
		t.Errorf("Items() after failed Load = %d item(s), want 0", len(got))
	}
	if tasks.Err() == nil {
		t.Error("Err() = nil after failed Load")
	}
}

func TestTasks_RemoveLeavesEarlierSnapshotsIntact(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	api := client.New(srv.URL)
	tasks := NewTasks(api, signedIn(api, "u1", "ada@example.com", "Ada"))
	tasks.items = []*model.Acceptance{
		{ID: "a1"},
		{ID: "a2"},
		{ID: "a3"},
	}

	before := tasks.Items()

	if err := tasks.MarkDone(context.Background(), "a1"); err != nil {
		t.Fatalf("MarkDone() error = %v", err)
	}

	if len(before) != 3 || before[0].ID != "a1" || before[1].ID != "a2" || before[2].ID != "a3" {
		t.Errorf("earlier snapshot mutated by remove: %+v", before)
	}
	got := tasks.Items()
	if len(got) != 2 || got[0].ID != "a2" || got[1].ID != "a3" {
		t.Errorf("Items() after MarkDone = %+v, want a2 and a3", got)
	}
}

func TestTasks_RemoveFailureKeepsList(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Not your acceptance","code":"NOT_OWNER"}`))
	}))
	defer srv.Close()

	api := client.New(srv.URL)
	tasks := NewTasks(api, signedIn(api, "u1", "ada@example.com", "Ada"))
	tasks.items = []*model.Acceptance{{ID: "a1"}}

	if err := tasks.MarkDone(context.Background(), "a1"); err == nil {
		t.Fatal("MarkDone() error = nil, want server rejection surfaced")
	}
	if len(tasks.Items()) != 1 {
		t.Error("local list changed after failed delete")
	}
}
