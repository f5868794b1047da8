// Package memstore provides in-memory implementations of asyncmultimap.MultiMapStore and
// asyncmultimap.KeyIndex.
//
// The multimap is distributed across multiple buckets, each guarded by its own lock, so
// writers to different keys rarely contend. The key hash and the number of buckets are
// configurable. Values under one key have set semantics.
//
// They are meant for tests, examples and single-process deployments; a clustered
// deployment plugs its distributed collections in through the same interfaces.
package memstore
