package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/workhive/workhive/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates the full schema for tests.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	migrations := filepath.Join(root, "internal", "database", "migrations")
	steps := []string{"000001_init", "000002_job_views"}

	// Down migrations run newest first, up migrations in order.
	for i := len(steps) - 1; i >= 0; i-- {
		downSQL, err := os.ReadFile(filepath.Join(migrations, steps[i]+".down.sql"))
		if err != nil {
			return fmt.Errorf("read down migration %s: %w", steps[i], err)
		}
		if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
			return fmt.Errorf("apply down migration %s: %w", steps[i], err)
		}
	}
	for _, step := range steps {
		upSQL, err := os.ReadFile(filepath.Join(migrations, step+".up.sql"))
		if err != nil {
			return fmt.Errorf("read up migration %s: %w", step, err)
		}
		if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
			return fmt.Errorf("apply up migration %s: %w", step, err)
		}
	}

	return nil
}

// TruncateAll empties every table without touching the schema.
// Faster than ResetSchema between test cases.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `TRUNCATE users, jobs, categories, accepted_jobs, profiles, job_view_events, daily_job_stats`)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestJob creates a test job posting with sensible defaults.
func NewTestJob(t testing.TB, ownerEmail string) *model.Job {
	t.Helper()
	now := time.Now().UTC()
	return &model.Job{
		ID:         UniqueID("job"),
		Title:      "Test Posting",
		PostedBy:   "Test Poster",
		Category:   "Web Dev",
		Summary:    "A job created by the test factory",
		OwnerEmail: ownerEmail,
		OwnerUID:   UniqueID("user"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewTestCategory creates a test category with sensible defaults.
func NewTestCategory(t testing.TB, userID string) *model.Category {
	t.Helper()
	return &model.Category{
		ID:        UniqueID("cat"),
		Title:     "Test Category",
		UserID:    userID,
		Slug:      "test-category",
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestUser creates a test password-provider user.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	return &model.User{
		ID:          UniqueID("user"),
		Email:       email,
		DisplayName: "Test User",
		Provider:    model.ProviderPassword,
		CreatedAt:   time.Now().UTC(),
	}
}

// NewTestSession creates a session for the given identity.
func NewTestSession(t testing.TB, userID, email, displayName string) *model.Session {
	t.Helper()
	return &model.Session{
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
		Provider:    model.ProviderPassword,
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
