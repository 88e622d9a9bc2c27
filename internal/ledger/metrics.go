package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	materializedTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monthwise_materialized_transactions_total",
		Help: "Number of transactions created by the recurrence materializer.",
	})

	ceilingHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monthwise_materializer_ceiling_hits_total",
		Help: "Number of rule walks stopped by the month iteration ceiling. Any increase indicates malformed rule data.",
	})
)
