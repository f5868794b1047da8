// Package store provides adapters for the collaborators of the multimap adapter.
//
// FunctionsMultiMap and FunctionsKeyIndex build a MultiMapStore or KeyIndex out of plain
// functions, which is handy for wrapping a client library or for test doubles.
//
// This package also defines sentinel errors that adapters may wrap to classify a failure:
// ErrPut, ErrGet, ErrRemove, ErrRemoveValue, ErrIndexAdd and ErrIndexIterate.
package store
