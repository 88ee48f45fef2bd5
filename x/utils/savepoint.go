package utils

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Savepoint runs the rest of the stack on a cache wrap of the store. The
// cache is written when the call succeeds and dropped when it fails. It is
// enabled for Check, Deliver or both.
type Savepoint struct {
	check, deliver bool
}

var _ barter.Decorator = Savepoint{}

// NewSavepoint returns a disabled Savepoint. Enable it with OnCheck and
// OnDeliver.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (res *barter.CheckResult, err error) {
	if !s.check {
		return next.Check(ctx, db, tx)
	}
	err = within(db, func(db barter.KVStore) error {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (res *barter.DeliverResult, err error) {
	if !s.deliver {
		return next.Deliver(ctx, db, tx)
	}
	err = within(db, func(db barter.KVStore) error {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// within calls fn on a cache wrap of db and keeps its writes only on
// success. A store without cache support is handed to fn directly.
func within(db barter.KVStore, fn func(barter.KVStore) error) error {
	cacheable, ok := db.(barter.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
