package store

import (
	"testing"

	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
)

func TestSliceIterator(t *testing.T) {
	models := []Model{
		Pair([]byte("escrow:01"), []byte("open")),
		Pair([]byte("escrow:02"), nil),
		Pair([]byte("wallet:aa"), []byte("100 FOO")),
	}

	it := NewSliceIterator(models)
	for _, m := range models {
		key, value, err := it.Next()
		assert.Nil(t, err)
		assert.Equal(t, m.Key, key)
		assert.Equal(t, m.Value, value)
	}
	_, _, err := it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)

	released := NewSliceIterator(models)
	released.Release()
	_, _, err = released.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
}

func TestNonAtomicBatchWritesInOrder(t *testing.T) {
	db := MemStore()
	b := NewNonAtomicBatch(db)
	assert.Nil(t, b.Set([]byte("a"), []byte("1")))
	assert.Nil(t, b.Delete([]byte("a")))
	assert.Nil(t, b.Set([]byte("b"), []byte("2")))

	// nothing is visible before the write
	has, err := db.Has([]byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	assert.Nil(t, b.Write())
	has, err = db.Has([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
	got, err := db.Get([]byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("2"), got)
}
