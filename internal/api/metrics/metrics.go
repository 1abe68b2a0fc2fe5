// Package metrics defines and registers all custom Prometheus metrics for
// the affiliate portal API. It is the single source of truth for metric
// names, labels, and help strings. Metrics are registered with the default
// registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "affiliate_portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts completed affiliate signups.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of affiliate accounts created.",
	},
)

// ── Tracking metrics ──────────────────────────────────────────────────────────

// ClicksTrackedTotal counts redirect resolutions.
// Label:
//   - result: "counted" (click incremented) or "duplicate" (dedup hit)
var ClicksTrackedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clicks_tracked_total",
		Help:      "Total number of referral clicks resolved, labelled by dedup result.",
	},
	[]string{"result"},
)

// ConversionsRecordedTotal counts conversions that opened a commission.
var ConversionsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversions_recorded_total",
		Help:      "Total number of conversions recorded against referral links.",
	},
)

// LinksCreatedTotal counts generated referral links.
var LinksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "links_created_total",
		Help:      "Total number of referral links generated.",
	},
)

// ── Stats metrics ─────────────────────────────────────────────────────────────

// StatsComputeDuration measures how long a statistics aggregation takes.
// Label:
//   - kind: "dashboard" or "extended"
var StatsComputeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stats_compute_duration_seconds",
		Help:      "Duration of affiliate statistics aggregation.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"kind"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamEventFetchesTotal counts event catalog fetches.
// Label:
//   - outcome: "ok" or "degraded" (upstream failure masked as empty list)
var UpstreamEventFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_event_fetches_total",
		Help:      "Total number of event catalog fetches, labelled by outcome.",
	},
	[]string{"outcome"},
)
