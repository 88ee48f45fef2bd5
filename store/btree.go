package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree keeps nodes small. Cache wraps live for one transaction and
// rarely hold more than a handful of keys.
const btreeDegree = 2

// MemStore returns an empty in-memory store with no persistence.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheable gives any KVStore a btree backed CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// BTreeCacheWrap stages writes in a btree on top of a read only view.
// Every write is also queued in batch, which is flushed by Write.
type BTreeCacheWrap struct {
	staged *btree.BTree
	free   *btree.FreeList
	back   ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap stages writes for back and applies them to batch on
// Write. Nested wraps pass their free list down so nodes are recycled. A
// nil free list allocates a new one.
func NewBTreeCacheWrap(back ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		staged: btree.NewWithFreeList(btreeDegree, free),
		free:   free,
		back:   back,
		batch:  batch,
	}
}

func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes the staged operations and empties the wrap.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops every staged operation. Nodes go back to the free list.
func (b BTreeCacheWrap) Discard() {
	for b.staged.Len() > 0 {
		b.staged.DeleteMin()
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.staged.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.staged.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.lookup(key); ok {
		return e.value, nil
	}
	return b.back.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.lookup(key); ok {
		return !e.deleted, nil
	}
	return b.back.Has(key)
}

// lookup returns the staged entry for key, if any.
func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := b.staged.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(stagedRange(b.staged, start, end, false), parent, false), nil
}

func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(stagedRange(b.staged, start, end, true), parent, true), nil
}

// entry is a staged operation. A deleted entry hides the key of the
// store below.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
