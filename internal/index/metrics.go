package index

import "github.com/prometheus/client_golang/prometheus"

var rebuildCount = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "binaa",
	Subsystem: "service_index",
	Name:      "rebuilds",
})

var updateCount = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "binaa",
	Subsystem: "service_index",
	Name:      "updates",
}, []string{"kind"})

var removeCount = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "binaa",
	Subsystem: "service_index",
	Name:      "removals",
}, []string{"kind"})

var queryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Namespace: "binaa",
	Subsystem: "service_index",
	Name:      "query_duration_seconds",
	Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
})

// Collectors returns the package's metrics for registration by the host
// process. Nothing registers with the default registry implicitly, so two
// stores in one process never collide.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{rebuildCount, updateCount, removeCount, queryDuration}
}
