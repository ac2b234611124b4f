// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Job management metrics
	IncJobCreated()
	IncJobUpdated()
	IncJobDeleted()

	// Acceptance workflow metrics
	IncAcceptanceCreated()
	IncAcceptanceRemoved()
	IncAcceptCheckCacheHit()
	IncAcceptCheckCacheMiss()
	ObserveAcceptCheckDuration(duration time.Duration)

	// Category metrics
	IncCategoryCreated()
	IncCategoryDeleted()

	// Auth metrics
	IncSignIn(status string) // status: "success" or "failure"

	// View-event pipeline metrics
	IncViewEventPublished(status string) // status: "success" or "dropped"
	IncViewEventProcessed(status string) // status: "success", "failed" or "dead_lettered"
	ObserveViewBatchSize(size int)
	ObserveViewBatchDuration(duration time.Duration)
	SetViewQueueDepth(depth int64)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
