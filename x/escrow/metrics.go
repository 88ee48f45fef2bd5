package escrow

import (
	"github.com/iov-one/barter/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	openedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "barter",
		Subsystem: "escrow",
		Name:      "opened_total",
		Help:      "Number of escrows opened.",
	})
	fulfilledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "barter",
		Subsystem: "escrow",
		Name:      "fulfilled_total",
		Help:      "Number of escrows fulfilled.",
	})
	failuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barter",
		Subsystem: "escrow",
		Name:      "failures_total",
		Help:      "Number of rejected escrow operations.",
	}, []string{"op", "reason"})
	settledAmount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "barter",
		Subsystem: "escrow",
		Name:      "settled_amount",
		Help:      "Amount of the deposited asset released by a fulfill.",
		Buckets:   prometheus.ExponentialBuckets(1, 10, 12),
	})
)

func init() {
	prometheus.MustRegister(openedTotal, fulfilledTotal, failuresTotal, settledAmount)
}

// failureReason returns a short label for the error kind.
func failureReason(err error) string {
	switch {
	case errors.ErrUnauthorized.Is(err):
		return "unauthorized"
	case errors.ErrNotFound.Is(err):
		return "not_found"
	case errors.ErrDuplicate.Is(err):
		return "duplicate"
	case errors.ErrInsufficientAmount.Is(err):
		return "insufficient_funds"
	case ErrAssetMismatch.Is(err):
		return "asset_mismatch"
	case errors.ErrPanic.Is(err):
		return "panic"
	default:
		return "invalid"
	}
}

func recordFailure(op string, err error) {
	failuresTotal.WithLabelValues(op, failureReason(err)).Inc()
}
