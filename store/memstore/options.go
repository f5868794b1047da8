package memstore

import (
	asyncmultimap "github.com/karupanerura/async-multimap"
	"github.com/karupanerura/async-multimap/internal/keyhash"
)

// DefaultBucketsSize is the default number of buckets in the multimap.
var DefaultBucketsSize = 256

// Option is the interface for the options of the in-memory multimap.
type Option[K asyncmultimap.KeyConstraint] interface {
	apply(*options[K])
}

type optionFunc[K asyncmultimap.KeyConstraint] func(*options[K])

func (f optionFunc[K]) apply(o *options[K]) {
	f(o)
}

// WithKeyHash sets the key hash function used to pick a bucket.
func WithKeyHash[K asyncmultimap.KeyConstraint](f func(K) int) Option[K] {
	return optionFunc[K](func(o *options[K]) {
		o.hashKey = f
	})
}

// WithBucketsSize sets the number of buckets in the multimap.
// The number of buckets must be a natural number.
func WithBucketsSize[K asyncmultimap.KeyConstraint](bucketsSize int) Option[K] {
	if bucketsSize <= 0 {
		panic("bucketSize must be natural number")
	}
	return optionFunc[K](func(o *options[K]) {
		o.bucketsSize = bucketsSize
	})
}

type options[K asyncmultimap.KeyConstraint] struct {
	hashKey     func(K) int
	bucketsSize int
}

func defaultOptions[K asyncmultimap.KeyConstraint]() options[K] {
	return options[K]{
		hashKey:     keyhash.For[K](),
		bucketsSize: DefaultBucketsSize,
	}
}
