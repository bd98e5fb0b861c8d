// Package metrics defines and registers all custom Prometheus metrics for the
// influence frontend gateway. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "influence_frontend"

// ── Backend gateway metrics ───────────────────────────────────────────────────

// BackendRequestsTotal counts calls issued to the ML backend.
// Labels:
//   - operation: the typed gateway operation (e.g. "login", "predict")
//   - outcome: "ok", "unauthenticated", "validation", "operation", "unavailable"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the ML backend, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// BackendRequestDuration measures backend call latency end-to-end. Buckets
// stretch far past the defaults because a cold-started backend may take tens
// of seconds to answer.
// Label:
//   - operation: the typed gateway operation
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of ML backend calls from request build to response decode.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 40},
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionResolutionsTotal counts per-navigation session resolutions.
// Label:
//   - result: "authenticated" or "anonymous"
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session guard resolutions, by result.",
	},
	[]string{"result"},
)

// ViewDenialsTotal counts navigations the role router turned away.
// Labels:
//   - view: the requested view
//   - role: the role that was denied
var ViewDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_denials_total",
		Help:      "Total number of role-gated navigations redirected or refused.",
	},
	[]string{"view", "role"},
)
