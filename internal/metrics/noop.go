package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncJobCreated is a no-op.
func (n *NoopRecorder) IncJobCreated() {}

// IncJobUpdated is a no-op.
func (n *NoopRecorder) IncJobUpdated() {}

// IncJobDeleted is a no-op.
func (n *NoopRecorder) IncJobDeleted() {}

// IncAcceptanceCreated is a no-op.
func (n *NoopRecorder) IncAcceptanceCreated() {}

// IncAcceptanceRemoved is a no-op.
func (n *NoopRecorder) IncAcceptanceRemoved() {}

// IncAcceptCheckCacheHit is a no-op.
func (n *NoopRecorder) IncAcceptCheckCacheHit() {}

// IncAcceptCheckCacheMiss is a no-op.
func (n *NoopRecorder) IncAcceptCheckCacheMiss() {}

// ObserveAcceptCheckDuration is a no-op.
func (n *NoopRecorder) ObserveAcceptCheckDuration(duration time.Duration) {}

// IncCategoryCreated is a no-op.
func (n *NoopRecorder) IncCategoryCreated() {}

// IncCategoryDeleted is a no-op.
func (n *NoopRecorder) IncCategoryDeleted() {}

// IncSignIn is a no-op.
func (n *NoopRecorder) IncSignIn(status string) {}

// IncViewEventPublished is a no-op.
func (n *NoopRecorder) IncViewEventPublished(status string) {}

// IncViewEventProcessed is a no-op.
func (n *NoopRecorder) IncViewEventProcessed(status string) {}

// ObserveViewBatchSize is a no-op.
func (n *NoopRecorder) ObserveViewBatchSize(size int) {}

// ObserveViewBatchDuration is a no-op.
func (n *NoopRecorder) ObserveViewBatchDuration(duration time.Duration) {}

// SetViewQueueDepth is a no-op.
func (n *NoopRecorder) SetViewQueueDepth(depth int64) {}
