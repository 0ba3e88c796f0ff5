package store

import "github.com/iov-one/cooloff"

// Move references for all storage types into this package for shorter
// names everywhere.

type ReadOnlyKVStore = cooloff.ReadOnlyKVStore
type SetDeleter = cooloff.SetDeleter
type KVStore = cooloff.KVStore
type Iterator = cooloff.Iterator
type CacheableKVStore = cooloff.CacheableKVStore
type KVCacheWrap = cooloff.KVCacheWrap
type CommitKVStore = cooloff.CommitKVStore
type CommitID = cooloff.CommitID

// Batch can write multiple ops atomically to an underlying store.
type Batch interface {
	SetDeleter
	Write() error
}

// Model groups together key and value to return.
type Model struct {
	Key   []byte
	Value []byte
}
