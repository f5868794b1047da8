// Package asyncmultimap adapts a distributed multimap, where one key maps to a set of values,
// to a non-blocking, callback-driven API.
//
// Every operation of MultiMapAdapter returns immediately. Its outcome is delivered exactly once
// to a Handler, on the execution context resolved for the request (see package execctx), and
// never on the goroutine that completed the underlying store call.
//
// The store itself is an external collaborator described by MultiMapStore, with KeyIndex as a
// best-effort secondary index of every key ever added. The index lets RemoveAllMatching
// enumerate keys with a two-phase scatter-gather, because the store has no predicate-based
// deletion.
package asyncmultimap
