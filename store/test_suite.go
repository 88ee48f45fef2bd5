package store

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/barter/errors"
	"github.com/stretchr/testify/require"
)

// OpenStore returns a fresh, empty store for a single conformance case.
// Cleanup should be registered on t.
type OpenStore func(t testing.TB) CacheableKVStore

// RunConformance verifies that a CacheableKVStore implementation stages
// writes in cache wraps, applies them only on Write and merges cached and
// backing data when iterating. The btree store and the iavl adapter must
// both pass it.
func RunConformance(t *testing.T, open OpenStore) {
	t.Run("stage write discard", func(t *testing.T) { checkStaging(t, open(t)) })
	t.Run("overlay", func(t *testing.T) { checkOverlay(t, open) })
	t.Run("iteration", func(t *testing.T) { checkIteration(t, open) })
}

func checkStaging(t *testing.T, base CacheableKVStore) {
	maker, vault := []byte("maker"), []byte("vault")

	requireValue(t, base, maker, nil)
	require.NoError(t, base.Set(maker, []byte("1000")))
	requireValue(t, base, maker, []byte("1000"))

	staged := base.CacheWrap()
	require.NoError(t, staged.Set(vault, []byte("100")))
	require.NoError(t, staged.Set(maker, []byte("900")))
	requireValue(t, staged, vault, []byte("100"))
	requireValue(t, base, vault, nil)
	requireValue(t, base, maker, []byte("1000"))
	require.NoError(t, staged.Write())
	requireValue(t, base, vault, []byte("100"))
	requireValue(t, base, maker, []byte("900"))

	failed := base.CacheWrap()
	require.NoError(t, failed.Delete(vault))
	require.NoError(t, failed.Set([]byte("taker"), []byte("100")))
	failed.Discard()
	requireValue(t, base, vault, []byte("100"))
	requireValue(t, base, []byte("taker"), nil)

	// a wrap created before another one is written observes the write
	observer := base.CacheWrap()
	settle := base.CacheWrap()
	require.NoError(t, settle.Delete(vault))
	require.NoError(t, settle.Write())
	requireValue(t, observer, vault, nil)
	requireValue(t, observer, maker, []byte("900"))
}

func checkOverlay(t *testing.T, open OpenStore) {
	cases := map[string]struct {
		parent []Op
		child  []Op
		// nil values are expected to be missing
		parentView []Model
		childView  []Model
	}{
		"child overwrites": {
			parent:     []Op{SetOp([]byte("a"), []byte("1"))},
			child:      []Op{SetOp([]byte("a"), []byte("2"))},
			parentView: []Model{Pair([]byte("a"), []byte("1"))},
			childView:  []Model{Pair([]byte("a"), []byte("2"))},
		},
		"child deletes": {
			parent:     []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("b"), []byte("2"))},
			child:      []Op{DelOp([]byte("b"))},
			parentView: []Model{Pair([]byte("a"), []byte("1")), Pair([]byte("b"), []byte("2"))},
			childView:  []Model{Pair([]byte("a"), []byte("1")), Pair([]byte("b"), nil)},
		},
		"child adds after delete": {
			parent:     []Op{SetOp([]byte("a"), []byte("1"))},
			child:      []Op{DelOp([]byte("a")), SetOp([]byte("a"), []byte("3")), SetOp([]byte("c"), []byte("4"))},
			parentView: []Model{Pair([]byte("a"), []byte("1")), Pair([]byte("c"), nil)},
			childView:  []Model{Pair([]byte("a"), []byte("3")), Pair([]byte("c"), []byte("4"))},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := open(t)
			applyOps(t, parent, tc.parent)
			child := parent.CacheWrap()
			applyOps(t, child, tc.child)

			for _, m := range tc.parentView {
				requireValue(t, parent, m.Key, m.Value)
			}
			for _, m := range tc.childView {
				requireValue(t, child, m.Key, m.Value)
			}
			require.NoError(t, child.Write())
			for _, m := range tc.childView {
				requireValue(t, parent, m.Key, m.Value)
			}
		})
	}
}

func checkIteration(t *testing.T, open OpenStore) {
	// even keys live in the parent, multiples of three are overwritten in
	// the child, multiples of five are deleted in the child
	var parentOps, childOps []Op
	var want []Model
	for i := 0; i < 40; i++ {
		key := []byte(fmt.Sprintf("wallet:%03d", i))
		value := []byte(fmt.Sprintf("p%d", i))
		if i%2 == 0 {
			parentOps = append(parentOps, SetOp(key, value))
		}
		switch {
		case i%5 == 0:
			childOps = append(childOps, DelOp(key))
			continue
		case i%3 == 0:
			value = []byte(fmt.Sprintf("c%d", i))
			childOps = append(childOps, SetOp(key, value))
		case i%2 != 0:
			continue
		}
		want = append(want, Pair(key, value))
	}
	sort.Slice(want, func(i, j int) bool { return bytes.Compare(want[i].Key, want[j].Key) < 0 })

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"all ascending": {
			want: want,
		},
		"all descending": {
			reverse: true,
			want:    reversed(want),
		},
		"lower bound": {
			start: want[5].Key,
			want:  want[5:],
		},
		"upper bound is exclusive": {
			end:  want[7].Key,
			want: want[:7],
		},
		"both bounds descending": {
			start:   want[2].Key,
			end:     want[9].Key,
			reverse: true,
			want:    reversed(want[2:9]),
		},
		"empty range": {
			start: []byte("wallet:0005"),
			end:   []byte("wallet:0006"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := open(t)
			applyOps(t, parent, parentOps)
			child := parent.CacheWrap()
			applyOps(t, child, childOps)

			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = child.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = child.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer it.Release()

			for i, m := range tc.want {
				key, value, err := it.Next()
				require.NoError(t, err, "position %d", i)
				require.Equal(t, string(m.Key), string(key), "position %d", i)
				require.Equal(t, m.Value, value, "position %d", i)
			}
			_, _, err = it.Next()
			require.True(t, errors.ErrIteratorDone.Is(err), "want iterator done, got %+v", err)
		})
	}
}

func applyOps(t testing.TB, db SetDeleter, ops []Op) {
	t.Helper()
	for _, op := range ops {
		require.NoError(t, op.Apply(db))
	}
}

// requireValue checks both Get and Has. A nil value means the key must be
// absent.
func requireValue(t testing.TB, db ReadOnlyKVStore, key, value []byte) {
	t.Helper()
	got, err := db.Get(key)
	require.NoError(t, err)
	require.Equal(t, value, got, "value of %q", key)
	has, err := db.Has(key)
	require.NoError(t, err)
	require.Equal(t, value != nil, has, "presence of %q", key)
}

func reversed(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}
