package leaderboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rankingPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twocardpoker_ranking_passes_total",
		Help: "ranking passes run by the leaderboard, by result",
	}, []string{"result"})

	supersededSnapshots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twocardpoker_superseded_snapshots_total",
		Help: "player snapshots replaced by a newer one before they were ranked",
	})

	rankingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "twocardpoker_ranking_duration_seconds",
		Help:    "time spent ranking a player snapshot",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
)
