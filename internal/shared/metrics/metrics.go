package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector of the service. It is separate from the
// global default registry so tests see only these series.
var Registry = prometheus.NewRegistry()

var (
	recommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendations_total",
		Help: "Recommendations produced, by inferred category",
	}, []string{"category"})

	clarificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clarifications_total",
		Help: "Clarification analyses, by whether questions were needed",
	}, []string{"needed"})

	coachingStartedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coaching_started_total",
		Help: "Coaching generations started",
	}, []string{"engine"})

	coachingCompletedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coaching_completed_total",
		Help: "Coaching generations completed",
	}, []string{"engine"})

	coachingFailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coaching_failed_total",
		Help: "Coaching generations that failed",
	}, []string{"engine"})

	coachingFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coaching_fallback_total",
		Help: "Coaching documents served from fallback templates",
	})

	coachingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "coaching_duration_ms",
		Help:    "Coaching generation duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})

	catalogCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_requests_total",
		Help: "Catalog cache lookups, by result",
	}, []string{"result"})

	coachingJobsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coaching_jobs_total",
		Help: "Coaching queue jobs seen by the worker, by outcome",
	}, []string{"outcome"})
)

func init() {
	Registry.MustRegister(
		recommendationsTotal,
		clarificationsTotal,
		coachingStartedTotal,
		coachingCompletedTotal,
		coachingFailedTotal,
		coachingFallbackTotal,
		coachingDuration,
		catalogCacheTotal,
		coachingJobsTotal,
	)
}

// IncRecommendation counts one recommendation for category.
func IncRecommendation(category string) {
	recommendationsTotal.WithLabelValues(category).Inc()
}

// IncClarification counts one clarification analysis.
func IncClarification(needed bool) {
	label := "false"
	if needed {
		label = "true"
	}
	clarificationsTotal.WithLabelValues(label).Inc()
}

func IncCoachingStarted(engine string) {
	coachingStartedTotal.WithLabelValues(engine).Inc()
}

func IncCoachingCompleted(engine string) {
	coachingCompletedTotal.WithLabelValues(engine).Inc()
}

func IncCoachingFailed(engine string) {
	coachingFailedTotal.WithLabelValues(engine).Inc()
}

func IncCoachingFallback() {
	coachingFallbackTotal.Inc()
}

// ObserveCoachingDurationMs records a coaching duration in milliseconds.
func ObserveCoachingDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	coachingDuration.Observe(value)
}

// IncCatalogCache counts a cache lookup; result is "hit", "miss" or "error".
func IncCatalogCache(result string) {
	catalogCacheTotal.WithLabelValues(result).Inc()
}

// IncJobsReceived counts a queue message picked up by the worker.
func IncJobsReceived() {
	coachingJobsTotal.WithLabelValues("received").Inc()
}

func IncJobsCompleted() {
	coachingJobsTotal.WithLabelValues("completed").Inc()
}

func IncJobsFailed() {
	coachingJobsTotal.WithLabelValues("failed").Inc()
}

// IncJobsDeletedUnrecoverable counts messages dropped because they can never succeed.
func IncJobsDeletedUnrecoverable() {
	coachingJobsTotal.WithLabelValues("deleted_unrecoverable").Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
