package store

import "github.com/iov-one/barter"

// Aliases so store implementations do not repeat the barter prefix.
type (
	ReadOnlyKVStore  = barter.ReadOnlyKVStore
	SetDeleter       = barter.SetDeleter
	KVStore          = barter.KVStore
	Batch            = barter.Batch
	Iterator         = barter.Iterator
	CacheableKVStore = barter.CacheableKVStore
	KVCacheWrap      = barter.KVCacheWrap
	CommitKVStore    = barter.CommitKVStore
	CommitID         = barter.CommitID
	Model            = barter.Model
)

var Pair = barter.Pair
