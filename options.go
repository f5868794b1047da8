package asyncmultimap

import "github.com/prometheus/client_golang/prometheus"

// Option is the interface for the options of MultiMapAdapter.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// WithMaxConcurrency bounds the number of concurrent store calls issued by each phase of
// RemoveAllMatching. The bound must be a natural number. By default it is unbounded.
func WithMaxConcurrency(n int) Option {
	if n <= 0 {
		panic("max concurrency must be natural number")
	}
	return optionFunc(func(o *options) {
		o.maxConcurrency = n
	})
}

// WithMetrics registers the adapter's Prometheus collectors to reg.
// Adapters sharing a registerer share the collectors.
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(o *options) {
		o.registerer = reg
	})
}

type options struct {
	maxConcurrency int
	registerer     prometheus.Registerer
}

func defaultOptions() options {
	return options{}
}
