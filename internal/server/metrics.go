package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache label values.
const (
	cacheHit  = "hit"
	cacheMiss = "miss"
	cacheNone = "none"
)

// Transport label values.
const (
	transportHTTP     = "http"
	transportRealtime = "socketio"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depscope_queries_total",
		Help: "Dependency queries served, by mode, transport and cache outcome",
	}, []string{"mode", "transport", "cache"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "depscope_query_duration_seconds",
		Help:    "Time spent computing a dependency closure",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"mode"})

	closureSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "depscope_closure_size",
		Help:    "Number of inverse dependencies returned per query",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
	}, []string{"mode"})
)
