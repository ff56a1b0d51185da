// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

var (
	MatchesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matches_generated_total",
			Help: "Matches persisted by generation, by requesting user type",
		},
		[]string{"user_type"},
	)

	MatchCompatibilityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_compatibility_score",
			Help:    "Distribution of computed compatibility scores",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	MatchStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_status_transitions_total",
			Help: "Match status changes caused by interest updates and views",
		},
		[]string{"from", "to"},
	)

	ProfileCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_cache_requests_total",
			Help: "Profile cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	MatchNotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_notifications_total",
			Help: "Mutual match notifications by channel and result",
		},
		[]string{"channel", "result"},
	)
)
