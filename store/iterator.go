package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/barter/errors"
)

// stagedRange copies the entries within [start, end) out of the tree. Nil
// bounds are open. The copy lets callers write while iterating.
func stagedRange(bt *btree.BTree, start, end []byte, reverse bool) []entry {
	var res []entry
	collect := func(i btree.Item) bool {
		res = append(res, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	if reverse {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// cacheIterator merges staged entries with the iterator of the store
// below. For equal keys the staged entry wins.
type cacheIterator struct {
	staged  []entry
	parent  Iterator
	reverse bool

	// head is the next parent pair, valid when hasHead is set
	hasHead    bool
	parentDone bool
	head       Model
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(staged []entry, parent Iterator, reverse bool) *cacheIterator {
	return &cacheIterator{staged: staged, parent: parent, reverse: reverse}
}

func (c *cacheIterator) Next() ([]byte, []byte, error) {
	for {
		if err := c.fill(); err != nil {
			return nil, nil, err
		}
		if len(c.staged) == 0 && !c.hasHead {
			return nil, nil, errors.ErrIteratorDone
		}
		if c.hasHead && (len(c.staged) == 0 || c.parentFirst()) {
			c.hasHead = false
			return c.head.Key, c.head.Value, nil
		}

		e := c.staged[0]
		c.staged = c.staged[1:]
		if c.hasHead && bytes.Equal(e.key, c.head.Key) {
			c.hasHead = false
		}
		if !e.deleted {
			return e.key, e.value, nil
		}
	}
}

// parentFirst is true when the parent head comes strictly before the next
// staged entry in iteration order.
func (c *cacheIterator) parentFirst() bool {
	cmp := bytes.Compare(c.head.Key, c.staged[0].key)
	if c.reverse {
		return cmp > 0
	}
	return cmp < 0
}

func (c *cacheIterator) fill() error {
	if c.hasHead || c.parentDone {
		return nil
	}
	key, value, err := c.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		c.parentDone = true
		return nil
	}
	if err != nil {
		return err
	}
	c.head = Pair(key, value)
	c.hasHead = true
	return nil
}

func (c *cacheIterator) Release() {
	c.parent.Release()
	c.staged = nil
}
