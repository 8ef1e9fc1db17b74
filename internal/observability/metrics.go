// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connectsphere_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// PostsCreated counts posts accepted by the posting policy.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "connectsphere_posts_created_total",
		Help: "Total number of posts created",
	})

	// PostsRejected counts posts denied by the posting policy, by reason.
	PostsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connectsphere_posts_rejected_total",
		Help: "Total number of post creations denied, by policy reason",
	}, []string{"reason"})

	// VerificationTransitions counts workflow transitions by step and outcome.
	VerificationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connectsphere_verification_transitions_total",
		Help: "Total verification workflow transitions by step and outcome",
	}, []string{"step", "outcome"})

	// UploadWindowRejections counts submissions attempted outside the window.
	UploadWindowRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "connectsphere_upload_window_rejections_total",
		Help: "Total upload submissions rejected because the window was closed",
	})
)
