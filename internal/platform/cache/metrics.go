package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts FindByID calls answered from Redis.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cakes_cache_hits_total",
			Help: "Total number of cake cache hits",
		},
	)

	// CacheMisses counts FindByID calls that fell through to the backing store.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cakes_cache_misses_total",
			Help: "Total number of cake cache misses",
		},
	)

	// CacheErrors tracks Redis failures by operation.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cakes_cache_errors_total",
			Help: "Total number of cake cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete", "decode"
	)
)
