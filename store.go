package barter

// ReadOnlyKVStore reads state. Missing keys read as nil.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. The range must not be written to while the iterator is live.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator walks the same range in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write half shared by stores and batches.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store every handler receives.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch queues writes and applies them on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator returns pairs until Next fails with errors.ErrIteratorDone.
// Any other error is a real failure. Release must always be called.
type Iterator interface {
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can stage writes in a CacheWrap.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap sees its own staged writes on top of the parent store. Write
// applies all of them to the parent, Discard drops all of them. Nothing
// reaches the parent in between.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root state. Changes are made through a
// CacheWrap and become durable with Commit.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)
	// LoadLatestVersion restores the newest complete version after a
	// restart.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID names a committed version by height and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
