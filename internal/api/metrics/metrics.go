// Package metrics defines and registers the gateway's custom Prometheus
// metrics. It is the single source of truth for metric names, labels, and
// help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsDestroyedTotal counts explicit logouts.
var SessionsDestroyedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_destroyed_total",
		Help:      "Total number of sessions destroyed by logout.",
	},
)

// ProxyForwardsTotal counts proxied requests.
// Labels:
//   - route: "api" (path-prefix) or "header" (header-directed)
//   - outcome: "relayed", "rejected" (bad/blocked target), "upstream_error"
var ProxyForwardsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_forwards_total",
		Help:      "Total number of proxy forwarding attempts, by route and outcome.",
	},
	[]string{"route", "outcome"},
)

// ProxyUpstreamDuration measures the full upstream exchange per forward.
// Label:
//   - route: "api" or "header"
var ProxyUpstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "proxy_upstream_duration_seconds",
		Help:      "Duration of upstream calls made by the reverse proxy.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)
