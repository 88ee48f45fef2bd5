package orm

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// queryPrefix returns all models with keys starting with prefix.
func queryPrefix(db barter.ReadOnlyKVStore, prefix []byte) ([]barter.Model, error) {
	iter, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	return consumeIterator(iter)
}

// consumeIterator will read all remaining data into an
// array and release the iterator
func consumeIterator(iter barter.Iterator) ([]barter.Model, error) {
	defer iter.Release()

	var res []barter.Model
	for {
		key, value, err := iter.Next()
		switch {
		case err == nil:
			res = append(res, barter.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// prefixEnd returns the smallest key that is greater than all keys with the
// given prefix, or nil when no such key exists.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
