package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	sourceCache = "cache"
	sourceLive  = "live"

	statusOK     = "ok"
	statusFailed = "failed"
)

var (
	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_categories_total",
			Help: "Count of category recommendations served, by source.",
		},
		[]string{"source"},
	)

	productsScoredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_products_scored_total",
			Help: "Count of candidate products run through the scorer.",
		},
	)

	cacheInconsistenciesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_inconsistencies_total",
			Help: "Count of cached category entries discarded for mismatched lengths.",
		},
	)

	batchArchetypesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_batch_archetypes_total",
			Help: "Count of archetypes processed by the cache rebuild, by status.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		recommendationsTotal,
		productsScoredTotal,
		cacheInconsistenciesTotal,
		batchArchetypesTotal,
	)
}
