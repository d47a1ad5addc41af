package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	StorePutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typemeta_store_puts_total",
		Help: "Total number of entries inserted into the store, by index.",
	}, []string{"index"})

	MergeEntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typemeta_merge_entries_total",
		Help: "Total number of entries re-inserted by store merges.",
	})

	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "typemeta_query_seconds",
		Help:    "Time spent answering a store query.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	ClosureVisitedEntries = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "typemeta_closure_visited_entries",
		Help:    "Number of distinct entries visited by a transitive closure walk.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	SnapshotSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typemeta_history_snapshot_saves_total",
		Help: "Total number of store statistics snapshots persisted.",
	})
)
