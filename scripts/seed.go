// Command seed populates a development database with a demo account,
// categories and a handful of job postings.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/database"
	"github.com/workhive/workhive/internal/model"
	"github.com/workhive/workhive/internal/repository"
	"github.com/workhive/workhive/internal/service"
)

type output struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Jobs       int    `json:"jobs"`
	Categories int    `json:"categories"`
}

var seedCategories = []string{"Web Dev", "Design", "Marketing", "Data Science"}

var seedJobs = []struct {
	title    string
	category string
	summary  string
}{
	{"Landing page redesign", "Design", "Refresh the marketing site with a new visual identity."},
	{"REST API for inventory", "Web Dev", "Build a small CRUD service backed by Postgres."},
	{"Newsletter growth campaign", "Marketing", "Plan and run a three-month subscriber campaign."},
	{"Churn prediction model", "Data Science", "Prototype a churn model over the existing events table."},
	{"Checkout flow bugfixes", "Web Dev", "Track down and fix the reported payment form issues."},
	{"Brand style guide", "Design", "Produce a reusable style guide for product and marketing."},
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "demo@workhive.local", "Demo account email")
		password    = flag.String("password", "demo-password", "Demo account password")
		displayName = flag.String("display-name", "Demo User", "Demo account display name")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.RunMigrations(*databaseURL); err != nil {
		fmt.Fprintln(os.Stderr, "run migrations:", err)
		os.Exit(1)
	}

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	user, err := ensureUser(ctx, repo, *email, *password, *displayName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	categories, err := seedCategoryRecords(ctx, repo, user)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	jobs, err := seedJobRecords(ctx, repo, user)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	out := output{
		UserID:     user.ID,
		Email:      user.Email,
		Password:   *password,
		Jobs:       jobs,
		Categories: categories,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Printf("seeded %d jobs and %d categories for %s\n", out.Jobs, out.Categories, out.Email)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func ensureUser(ctx context.Context, repo *repository.Repository, email, password, displayName string) (*model.User, error) {
	existing, err := repo.GetUserByEmail(ctx, strings.ToLower(email))
	if err == nil {
		return existing, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        strings.ToLower(email),
		DisplayName:  displayName,
		Provider:     model.ProviderPassword,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func seedCategoryRecords(ctx context.Context, repo *repository.Repository, user *model.User) (int, error) {
	existing, err := repo.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("list categories: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.Slug] = true
	}

	created := 0
	for _, title := range seedCategories {
		slug := service.Slugify(title)
		if have[slug] {
			continue
		}
		cat := &model.Category{
			ID:        ulid.Make().String(),
			Title:     title,
			UserID:    user.ID,
			Slug:      slug,
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.CreateCategory(ctx, cat); err != nil {
			return created, fmt.Errorf("create category %q: %w", title, err)
		}
		created++
	}
	return created, nil
}

func seedJobRecords(ctx context.Context, repo *repository.Repository, user *model.User) (int, error) {
	existing, err := repo.ListJobsByOwner(ctx, user.Email)
	if err != nil {
		return 0, fmt.Errorf("list jobs: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	created := 0
	for _, j := range seedJobs {
		now := time.Now().UTC()
		job := &model.Job{
			ID:         ulid.Make().String(),
			Title:      j.title,
			PostedBy:   user.DisplayName,
			Category:   j.category,
			Summary:    j.summary,
			OwnerEmail: user.Email,
			OwnerUID:   user.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := repo.CreateJob(ctx, job); err != nil {
			return created, fmt.Errorf("create job %q: %w", j.title, err)
		}
		created++
	}
	return created, nil
}
