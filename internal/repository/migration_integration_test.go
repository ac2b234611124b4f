//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================================================
// Migration Integration Tests
// ============================================================================

func TestIntegrationMigration_ApplyAllTables(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	pool := repo.Pool()

	tables := []string{
		"users",
		"jobs",
		"categories",
		"accepted_jobs",
		"profiles",
		"job_view_events",
		"daily_job_stats",
	}

	for _, table := range tables {
		t.Run(table, func(t *testing.T) {
			exists, err := tableExists(ctx, pool, table)
			if err != nil {
				t.Fatalf("tableExists failed: %v", err)
			}
			if !exists {
				t.Errorf("Table %q should exist after migrations", table)
			}
		})
	}
}

func TestIntegrationMigration_JobsTableSchema(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	pool := repo.Pool()

	expectedColumns := []string{
		"id",
		"title",
		"posted_by",
		"category",
		"summary",
		"cover_image",
		"owner_email",
		"owner_uid",
		"created_at",
		"updated_at",
	}

	for _, col := range expectedColumns {
		t.Run(col, func(t *testing.T) {
			exists, err := columnExists(ctx, pool, "jobs", col)
			if err != nil {
				t.Fatalf("columnExists failed: %v", err)
			}
			if !exists {
				t.Errorf("Column %q should exist in jobs table", col)
			}
		})
	}
}

func TestIntegrationMigration_AcceptedJobsUniqueConstraint(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	pool := repo.Pool()

	insert := `
		INSERT INTO accepted_jobs (id, job_id, title, posted_by, posted_by_email, category, summary, accepted_by, accepted_by_email)
		VALUES ($1, 'job-x', 't', 'p', 'p@x', 'c', 's', 'w', 'w@x')
	`

	if _, err := pool.Exec(ctx, insert, "acc-1"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := pool.Exec(ctx, insert, "acc-2"); err == nil {
		t.Error("Expected unique violation for duplicate (job_id, accepted_by_email)")
	}
}

func TestIntegrationMigration_ViewEventsUniqueEventID(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)
	pool := repo.Pool()

	insert := `
		INSERT INTO job_view_events (id, event_id, job_id, visitor_hash, viewed_at)
		VALUES ($1, 'evt-1', 'job-x', 'aaaa111122223333', NOW())
	`

	if _, err := pool.Exec(ctx, insert, "view-1"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := pool.Exec(ctx, insert, "view-2"); err == nil {
		t.Error("Expected unique violation for duplicate event_id")
	}
}

func tableExists(ctx context.Context, pool *pgxpool.Pool, tableName string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`, tableName).Scan(&exists)
	return exists, err
}

func columnExists(ctx context.Context, pool *pgxpool.Pool, tableName, columnName string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.columns
			WHERE table_schema = 'public'
			AND table_name = $1
			AND column_name = $2
		)
	`, tableName, columnName).Scan(&exists)
	return exists, err
}
