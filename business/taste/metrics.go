package taste

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	classifyPathExact      = "exact"
	classifyPathPartial    = "partial"
	classifyPathSimilarity = "similarity"
	classifyPathNone       = "none"
)

var classificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "taste_classifications_total",
		Help: "Count of taste classifications by resolution path.",
	},
	[]string{"path"},
)

func init() {
	prometheus.MustRegister(classificationsTotal)
}
