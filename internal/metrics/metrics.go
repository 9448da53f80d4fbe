// Package metrics — Prometheus-коллекторы discussion-service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "discussion"

// Metrics — набор коллекторов. Регистрируется один раз в переданном Registerer.
type Metrics struct {
	// InconsistentParents — комментарии, поднятые на верхний уровень из-за битого parent_id.
	InconsistentParents prometheus.Counter
	// Events — опубликованные доменные события по типу.
	Events *prometheus.CounterVec
	// RollupCache — обращения к кэшу агрегатов: result=hit|miss|error.
	RollupCache *prometheus.CounterVec
	// BuildDuration — время построения и проекции страницы.
	BuildDuration prometheus.Histogram

	// HTTPRequests и HTTPDuration заполняет middleware.Metrics.
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New регистрирует коллекторы в reg (nil — prometheus.DefaultRegisterer).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		InconsistentParents: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inconsistent_parent_total",
			Help:      "Comments re-attached to the top level because their parent is missing, foreign or cyclic.",
		}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Domain events published on the bus.",
		}, []string{"kind"}),
		RollupCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollup_cache_total",
			Help:      "Rollup cache lookups by result.",
		}, []string{"result"}),
		BuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "thread_build_seconds",
			Help:      "Time spent building and projecting a thread page.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}
