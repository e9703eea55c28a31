package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name:      "requests_total",
		Namespace: namespace,
		Subsystem: storeSubsystem,
		Help:      "Store API requests served, by operation and status code",
	}, []string{"operation", "status"})
)

var (
	ScratchAllocations = promauto.NewCounter(prometheus.CounterOpts{
		Name:      "scratch_allocations_total",
		Namespace: namespace,
		Subsystem: storeSubsystem,
		Help:      "Scratch directories handed out by the store",
	})
)
