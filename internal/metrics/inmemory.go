package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	JobsCreated              uint64
	JobsUpdated              uint64
	JobsDeleted              uint64
	AcceptancesCreated       uint64
	AcceptancesRemoved       uint64
	AcceptCheckCacheHits     uint64
	AcceptCheckCacheMisses   uint64
	AcceptCheckDurationCount uint64
	AcceptCheckDurationNs    int64
	CategoriesCreated        uint64
	CategoriesDeleted        uint64
	SignInSuccesses          uint64
	SignInFailures           uint64
	ViewEventsPublished      uint64
	ViewEventsDropped        uint64
	ViewEventsProcessed      uint64
	ViewEventsFailed         uint64
	ViewBatchCount           uint64
	ViewQueueDepth           int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	jobsCreated              uint64
	jobsUpdated              uint64
	jobsDeleted              uint64
	acceptancesCreated       uint64
	acceptancesRemoved       uint64
	acceptCheckCacheHits     uint64
	acceptCheckCacheMisses   uint64
	acceptCheckDurationCount uint64
	acceptCheckDurationNs    int64
	categoriesCreated        uint64
	categoriesDeleted        uint64
	signInSuccesses          uint64
	signInFailures           uint64
	viewEventsPublished      uint64
	viewEventsDropped        uint64
	viewEventsProcessed      uint64
	viewEventsFailed         uint64
	viewBatchCount           uint64
	viewQueueDepth           int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		JobsCreated:              atomic.LoadUint64(&m.jobsCreated),
		JobsUpdated:              atomic.LoadUint64(&m.jobsUpdated),
		JobsDeleted:              atomic.LoadUint64(&m.jobsDeleted),
		AcceptancesCreated:       atomic.LoadUint64(&m.acceptancesCreated),
		AcceptancesRemoved:       atomic.LoadUint64(&m.acceptancesRemoved),
		AcceptCheckCacheHits:     atomic.LoadUint64(&m.acceptCheckCacheHits),
		AcceptCheckCacheMisses:   atomic.LoadUint64(&m.acceptCheckCacheMisses),
		AcceptCheckDurationCount: atomic.LoadUint64(&m.acceptCheckDurationCount),
		AcceptCheckDurationNs:    atomic.LoadInt64(&m.acceptCheckDurationNs),
		CategoriesCreated:        atomic.LoadUint64(&m.categoriesCreated),
		CategoriesDeleted:        atomic.LoadUint64(&m.categoriesDeleted),
		SignInSuccesses:          atomic.LoadUint64(&m.signInSuccesses),
		SignInFailures:           atomic.LoadUint64(&m.signInFailures),
		ViewEventsPublished:      atomic.LoadUint64(&m.viewEventsPublished),
		ViewEventsDropped:        atomic.LoadUint64(&m.viewEventsDropped),
		ViewEventsProcessed:      atomic.LoadUint64(&m.viewEventsProcessed),
		ViewEventsFailed:         atomic.LoadUint64(&m.viewEventsFailed),
		ViewBatchCount:           atomic.LoadUint64(&m.viewBatchCount),
		ViewQueueDepth:           atomic.LoadInt64(&m.viewQueueDepth),
	}
}

// IncJobCreated increments the job created counter.
func (m *InMemoryRecorder) IncJobCreated() {
	atomic.AddUint64(&m.jobsCreated, 1)
}

// IncJobUpdated increments the job updated counter.
func (m *InMemoryRecorder) IncJobUpdated() {
	atomic.AddUint64(&m.jobsUpdated, 1)
}

// IncJobDeleted increments the job deleted counter.
func (m *InMemoryRecorder) IncJobDeleted() {
	atomic.AddUint64(&m.jobsDeleted, 1)
}

// IncAcceptanceCreated increments the acceptance created counter.
func (m *InMemoryRecorder) IncAcceptanceCreated() {
	atomic.AddUint64(&m.acceptancesCreated, 1)
}

// IncAcceptanceRemoved increments the acceptance removed counter.
func (m *InMemoryRecorder) IncAcceptanceRemoved() {
	atomic.AddUint64(&m.acceptancesRemoved, 1)
}

// IncAcceptCheckCacheHit increments the accept-check cache hit counter.
func (m *InMemoryRecorder) IncAcceptCheckCacheHit() {
	atomic.AddUint64(&m.acceptCheckCacheHits, 1)
}

// IncAcceptCheckCacheMiss increments the accept-check cache miss counter.
func (m *InMemoryRecorder) IncAcceptCheckCacheMiss() {
	atomic.AddUint64(&m.acceptCheckCacheMisses, 1)
}

// ObserveAcceptCheckDuration records an accept-check duration.
func (m *InMemoryRecorder) ObserveAcceptCheckDuration(duration time.Duration) {
	atomic.AddUint64(&m.acceptCheckDurationCount, 1)
	atomic.AddInt64(&m.acceptCheckDurationNs, duration.Nanoseconds())
}

// IncCategoryCreated increments the category created counter.
func (m *InMemoryRecorder) IncCategoryCreated() {
	atomic.AddUint64(&m.categoriesCreated, 1)
}

// IncCategoryDeleted increments the category deleted counter.
func (m *InMemoryRecorder) IncCategoryDeleted() {
	atomic.AddUint64(&m.categoriesDeleted, 1)
}

// IncSignIn increments the sign-in counter for the given status.
func (m *InMemoryRecorder) IncSignIn(status string) {
	if status == "success" {
		atomic.AddUint64(&m.signInSuccesses, 1)
		return
	}
	atomic.AddUint64(&m.signInFailures, 1)
}

// IncViewEventPublished increments the publish counter for the status.
func (m *InMemoryRecorder) IncViewEventPublished(status string) {
	if status == "success" {
		atomic.AddUint64(&m.viewEventsPublished, 1)
		return
	}
	atomic.AddUint64(&m.viewEventsDropped, 1)
}

// IncViewEventProcessed increments the consume counter for the status.
func (m *InMemoryRecorder) IncViewEventProcessed(status string) {
	if status == "success" {
		atomic.AddUint64(&m.viewEventsProcessed, 1)
		return
	}
	atomic.AddUint64(&m.viewEventsFailed, 1)
}

// ObserveViewBatchSize counts a processed batch.
func (m *InMemoryRecorder) ObserveViewBatchSize(size int) {
	atomic.AddUint64(&m.viewBatchCount, 1)
}

// ObserveViewBatchDuration is tracked only by batch count in memory.
func (m *InMemoryRecorder) ObserveViewBatchDuration(duration time.Duration) {}

// SetViewQueueDepth stores the current backlog gauge.
func (m *InMemoryRecorder) SetViewQueueDepth(depth int64) {
	atomic.StoreInt64(&m.viewQueueDepth, depth)
}
