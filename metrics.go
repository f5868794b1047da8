package asyncmultimap

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const promNamespace = "asyncmultimap"

const (
	opAdd               = "add"
	opGet               = "get"
	opRemove            = "remove"
	opRemoveAllForValue = "remove_all_for_value"
	opRemoveAllMatching = "remove_all_matching"
)

// operationMetrics is nil when metrics are disabled; every method is nil-safe.
type operationMetrics struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	candidates prometheus.Histogram
}

func newOperationMetrics(reg prometheus.Registerer) (*operationMetrics, error) {
	if reg == nil {
		return nil, nil
	}

	operations, err := registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "operations_total",
		Help:      "Number of completed multimap operations",
	}, []string{"operation", "outcome"}))
	if err != nil {
		return nil, err
	}

	durations, err := registerOrReuse(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: promNamespace,
		Name:      "operation_duration_seconds",
		Help:      "Time from issuing a multimap operation to handing its outcome to the execution context",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	candidates, err := registerOrReuse(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: promNamespace,
		Subsystem: "scatter_gather",
		Name:      "candidates",
		Help:      "Number of distinct values gathered for removal by remove-all-matching",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	}))
	if err != nil {
		return nil, err
	}

	return &operationMetrics{
		operations: operations,
		durations:  durations,
		candidates: candidates,
	}, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *operationMetrics) observe(op string, startedAt time.Time, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.durations.WithLabelValues(op).Observe(time.Since(startedAt).Seconds())
}

func (m *operationMetrics) observeCandidates(n int) {
	if m == nil {
		return
	}
	m.candidates.Observe(float64(n))
}
