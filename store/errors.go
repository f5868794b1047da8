package store

import "errors"

var (
	ErrPut          = errors.New("unable to put value into multimap")
	ErrGet          = errors.New("unable to get values from multimap")
	ErrRemove       = errors.New("unable to remove entry from multimap")
	ErrRemoveValue  = errors.New("unable to remove value from multimap")
	ErrIndexAdd     = errors.New("unable to add key to key index")
	ErrIndexIterate = errors.New("unable to iterate key index")
)
