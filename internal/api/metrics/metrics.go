// Package metrics defines and registers all custom Prometheus metrics for the
// job-queue gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobqueue"

// Outcome label values for AuthDecisionsTotal.
const (
	OutcomeGranted   = "granted"
	OutcomeDenied    = "denied"
	OutcomeForbidden = "forbidden"
	OutcomeBypassed  = "bypassed"
	OutcomeError     = "error"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthDecisionsTotal counts gateway decisions.
// Labels:
//   - scheme: "Basic", "Bearer", or "none" for bypassed requests
//   - outcome: granted, denied (401), forbidden (403), bypassed, error
var AuthDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of authentication decisions, by scheme and outcome.",
	},
	[]string{"scheme", "outcome"},
)

// AuthDecisionDuration measures how long a gateway decision takes, including
// the credential store lookup.
var AuthDecisionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_decision_duration_seconds",
		Help:      "Duration of authentication decisions.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"scheme"},
)

// TokensIssuedTotal counts bearer tokens minted by the login endpoint.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
)

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsEnqueuedTotal counts accepted enqueue requests.
// Label:
//   - replayed: "true" when an idempotency key returned an earlier job
var JobsEnqueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_enqueued_total",
		Help:      "Total number of recommendation jobs enqueued.",
	},
	[]string{"replayed"},
)

// JobsCanceledTotal counts jobs removed from the queue by their owner.
var JobsCanceledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_canceled_total",
		Help:      "Total number of recommendation jobs canceled.",
	},
)
