package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder backed by a Prometheus registry.
type PrometheusRecorder struct {
	jobsCreated        prometheus.Counter
	jobsUpdated        prometheus.Counter
	jobsDeleted        prometheus.Counter
	acceptancesCreated prometheus.Counter
	acceptancesRemoved prometheus.Counter
	acceptCheckCache   *prometheus.CounterVec
	acceptCheckLatency prometheus.Histogram
	categoriesCreated  prometheus.Counter
	categoriesDeleted  prometheus.Counter
	signIns            *prometheus.CounterVec
	viewsPublished     *prometheus.CounterVec
	viewsProcessed     *prometheus.CounterVec
	viewBatchSize      prometheus.Histogram
	viewBatchDuration  prometheus.Histogram
	viewQueueDepth     prometheus.Gauge
}

// NewPrometheus creates a PrometheusRecorder and registers its
// collectors with the given registerer.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		jobsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workhive_jobs_created_total",
			Help: "Total number of job postings created.",
		}),
		jobsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workhive_jobs_updated_total",
			Help: "Total number of job postings updated.",
		}),
		jobsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workhive_jobs_deleted_total",
			Help: "Total number of job postings deleted.",
		}),
		acceptancesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workhive_acceptances_created_total",
			Help: "Total number of job acceptances created.",
		}),
		acceptancesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workhive_acceptances_removed_total",
			Help: "Total number of job acceptances removed (done or cancelled).",
		}),
		acceptCheckCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workhive_accept_check_cache_total",
			Help: "Acceptance existence checks served by cache outcome.",
		}, []string{"outcome"}),
		acceptCheckLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "workhive_accept_check_duration_seconds",
			Help:    "Latency of acceptance existence checks.",
			Buckets: prometheus.DefBuckets,
		}),
		categoriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workhive_categories_created_total",
			Help: "Total number of categories created.",
		}),
		categoriesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workhive_categories_deleted_total",
			Help: "Total number of categories deleted.",
		}),
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workhive_sign_ins_total",
			Help: "Sign-in attempts by status.",
		}, []string{"status"}),
		viewsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workhive_view_events_published_total",
			Help: "Job view events published to the stream by status.",
		}, []string{"status"}),
		viewsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workhive_view_events_processed_total",
			Help: "Job view events consumed from the stream by status.",
		}, []string{"status"}),
		viewBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "workhive_view_batch_size",
			Help:    "Number of view events per processed batch.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),
		viewBatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "workhive_view_batch_duration_seconds",
			Help:    "Time spent persisting a view event batch.",
			Buckets: prometheus.DefBuckets,
		}),
		viewQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "workhive_view_queue_depth",
			Help: "Pending plus unread view events on the stream.",
		}),
	}

	reg.MustRegister(
		r.jobsCreated,
		r.jobsUpdated,
		r.jobsDeleted,
		r.acceptancesCreated,
		r.acceptancesRemoved,
		r.acceptCheckCache,
		r.acceptCheckLatency,
		r.categoriesCreated,
		r.categoriesDeleted,
		r.signIns,
		r.viewsPublished,
		r.viewsProcessed,
		r.viewBatchSize,
		r.viewBatchDuration,
		r.viewQueueDepth,
	)

	return r
}

// IncJobCreated increments the job created counter.
func (r *PrometheusRecorder) IncJobCreated() { r.jobsCreated.Inc() }

// IncJobUpdated increments the job updated counter.
func (r *PrometheusRecorder) IncJobUpdated() { r.jobsUpdated.Inc() }

// IncJobDeleted increments the job deleted counter.
func (r *PrometheusRecorder) IncJobDeleted() { r.jobsDeleted.Inc() }

// IncAcceptanceCreated increments the acceptance created counter.
func (r *PrometheusRecorder) IncAcceptanceCreated() { r.acceptancesCreated.Inc() }

// IncAcceptanceRemoved increments the acceptance removed counter.
func (r *PrometheusRecorder) IncAcceptanceRemoved() { r.acceptancesRemoved.Inc() }

// IncAcceptCheckCacheHit counts an accept-check served from cache.
func (r *PrometheusRecorder) IncAcceptCheckCacheHit() {
	r.acceptCheckCache.WithLabelValues("hit").Inc()
}

// IncAcceptCheckCacheMiss counts an accept-check that went to the database.
func (r *PrometheusRecorder) IncAcceptCheckCacheMiss() {
	r.acceptCheckCache.WithLabelValues("miss").Inc()
}

// ObserveAcceptCheckDuration records an accept-check duration.
func (r *PrometheusRecorder) ObserveAcceptCheckDuration(duration time.Duration) {
	r.acceptCheckLatency.Observe(duration.Seconds())
}

// IncCategoryCreated increments the category created counter.
func (r *PrometheusRecorder) IncCategoryCreated() { r.categoriesCreated.Inc() }

// IncCategoryDeleted increments the category deleted counter.
func (r *PrometheusRecorder) IncCategoryDeleted() { r.categoriesDeleted.Inc() }

// IncSignIn increments the sign-in counter for the given status.
func (r *PrometheusRecorder) IncSignIn(status string) {
	r.signIns.WithLabelValues(status).Inc()
}

// IncViewEventPublished counts a view event handed to the stream.
func (r *PrometheusRecorder) IncViewEventPublished(status string) {
	r.viewsPublished.WithLabelValues(status).Inc()
}

// IncViewEventProcessed counts a view event consumed from the stream.
func (r *PrometheusRecorder) IncViewEventProcessed(status string) {
	r.viewsProcessed.WithLabelValues(status).Inc()
}

// ObserveViewBatchSize records the size of a processed batch.
func (r *PrometheusRecorder) ObserveViewBatchSize(size int) {
	r.viewBatchSize.Observe(float64(size))
}

// ObserveViewBatchDuration records the persist time of a batch.
func (r *PrometheusRecorder) ObserveViewBatchDuration(duration time.Duration) {
	r.viewBatchDuration.Observe(duration.Seconds())
}

// SetViewQueueDepth sets the current stream backlog gauge.
func (r *PrometheusRecorder) SetViewQueueDepth(depth int64) {
	r.viewQueueDepth.Set(float64(depth))
}
