package viewer

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/workhive/workhive/internal/client"
	"github.com/workhive/workhive/internal/model"
)

// ViewMode selects the catalog rendering variant. It is pure UI state
// and only affects the page size.
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
)

// PageSize returns the number of jobs shown per page in this mode.
func (m ViewMode) PageSize() int {
	if m == ViewList {
		return 10
	}
	return 12
}

// SortOrder orders the catalog by creation time.
type SortOrder int

const (
	SortNewest SortOrder = iota
	SortOldest
)

// Catalog is the browsing view model: it holds the fetched job and
// category collections and derives the visible page from the current
// search term, category selection, sort order and page number.
// Filtering, sorting and pagination are all client-side.
type Catalog struct {
	api *client.Client

	mu         sync.Mutex
	jobs       []*model.Job
	categories []*model.Category
	err        error
	loaded     bool

	search   string
	category string
	order    SortOrder
	mode     ViewMode
	page     int
}

// NewCatalog builds an empty catalog on page 1 in grid mode, newest
// first.
func NewCatalog(api *client.Client) *Catalog {
	return &Catalog{api: api, mode: ViewGrid, order: SortNewest, page: 1}
}

// Load fetches the job collection and the category list. With recent
// set it loads the bounded recent subset instead of the full set. A
// failed fetch empties the list and records the error; the categories
// of a previous load are kept since they only drive the filter.
func (c *Catalog) Load(ctx context.Context, recent bool) error {
	var (
		jobs []*model.Job
		err  error
	)
	if recent {
		jobs, err = c.api.RecentJobs(ctx)
	} else {
		jobs, err = c.api.AllJobs(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = true
	if err != nil {
		c.jobs = nil
		c.err = err
		return err
	}
	c.jobs = jobs
	c.err = nil

	cats, catErr := c.api.AllCategories(ctx)
	if catErr == nil {
		c.categories = cats
	}
	return nil
}

// SetSearch updates the free-text filter and resets to page 1.
func (c *Catalog) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = term
	c.page = 1
}

// SetCategory updates the single-category filter (empty clears it) and
// resets to page 1.
func (c *Catalog) SetCategory(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = title
	c.page = 1
}

// SetSort updates the chronological order and resets to page 1.
func (c *Catalog) SetSort(order SortOrder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = order
	c.page = 1
}

// SetViewMode flips between grid and list. The page number is kept;
// Visible clamps it if the new page size pushes it out of range.
func (c *Catalog) SetViewMode(mode ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

// SetPage moves to the given page, clamped to the valid range.
func (c *Catalog) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = clampPage(n, c.totalPagesLocked())
}

// Page returns the current page number, clamped.
func (c *Catalog) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clampPage(c.page, c.totalPagesLocked())
}

// TotalPages returns the page count of the filtered result, at least 1.
func (c *Catalog) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

// Visible returns the jobs on the current page of the filtered and
// sorted collection.
func (c *Catalog) Visible() []*model.Job {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := c.filteredLocked()
	size := c.mode.PageSize()
	page := clampPage(c.page, pageCount(len(filtered), size))

	start := (page - 1) * size
	if start >= len(filtered) {
		return nil
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Err returns the error of the last failed load, or nil. An empty
// Visible result with a nil Err means no jobs matched.
func (c *Catalog) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Empty reports whether the catalog resolved successfully with zero
// matching jobs, distinct from the error state.
func (c *Catalog) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded && c.err == nil && len(c.filteredLocked()) == 0
}

// Categories returns the loaded category list for the filter control.
func (c *Catalog) Categories() []*model.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories
}

func (c *Catalog) filteredLocked() []*model.Job {
	out := make([]*model.Job, 0, len(c.jobs))
	for _, job := range c.jobs {
		if !job.Matches(c.search) {
			continue
		}
		if c.category != "" && !strings.EqualFold(job.Category, c.category) {
			continue
		}
		out = append(out, job)
	}

	order := c.order
	sort.SliceStable(out, func(i, j int) bool {
		if order == SortOldest {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (c *Catalog) totalPagesLocked() int {
	return pageCount(len(c.filteredLocked()), c.mode.PageSize())
}

func pageCount(items, size int) int {
	if items <= 0 {
		return 1
	}
	return (items + size - 1) / size
}

func clampPage(n, total int) int {
	if n < 1 {
		return 1
	}
	if n > total {
		return total
	}
	return n
}
