package catalog

import "github.com/prometheus/client_golang/prometheus"

var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_catalog_cache_hits_total",
		Help: "Catalog requests served from the response cache.",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_catalog_cache_misses_total",
		Help: "Catalog requests that went upstream.",
	})
	upstreamErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_catalog_upstream_errors_total",
		Help: "Failed catalog fetches by error code.",
	}, []string{"code"})
	upstreamDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_catalog_upstream_duration_seconds",
		Help:    "Latency of upstream catalog requests.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses, upstreamErrors, upstreamDuration)
}
