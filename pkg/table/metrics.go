package table

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dealsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twocardpoker_deals_total",
		Help: "hands dealt, by reason",
	}, []string{"reason"})

	insufficientCards = promauto.NewCounter(prometheus.CounterOpts{
		Name: "twocardpoker_insufficient_cards_total",
		Help: "deals that failed because the deck ran out",
	})

	storeWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "twocardpoker_store_write_failures_total",
		Help: "writes rejected or failed by the store, by operation",
	}, []string{"op"})
)

// deal reasons
const (
	reasonCreate    = "create"
	reasonRedeal    = "redeal"
	reasonReshuffle = "reshuffle"
	reasonRequest   = "request"
)
