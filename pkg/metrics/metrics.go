package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LedgerEntriesTotal counts appended ledger entries by kind.
	LedgerEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "milasset_ledger_entries_total",
		Help: "Ledger entries appended, by kind.",
	}, []string{"kind"})

	// InsufficientStockTotal counts stock-decreasing operations rejected by the guard.
	InsufficientStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "milasset_insufficient_stock_rejections_total",
		Help: "Operations rejected because they would drive on-hand stock negative.",
	})

	// ForbiddenTotal counts requests rejected by the role scope filter.
	ForbiddenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "milasset_forbidden_requests_total",
		Help: "Requests rejected by the role/base scope filter.",
	})
)
