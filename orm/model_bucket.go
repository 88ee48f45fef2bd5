package orm

import (
	"reflect"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Model is a Persistent entity that can check its own consistency.
type Model interface {
	barter.Persistent
	Validate() error
}

// ModelBucket stores models of a single type by primary key.
type ModelBucket interface {
	// One loads the model under key into dst. It fails with ErrNotFound
	// for a missing key and with ErrType when dst is not of the bucket
	// type.
	One(db barter.ReadOnlyKVStore, key []byte, dst Model) error

	// Has returns nil if key exists and ErrNotFound otherwise.
	Has(db barter.ReadOnlyKVStore, key []byte) error

	// Put validates m and stores it under key.
	Put(db barter.KVStore, key []byte, m Model) error

	// Delete fails with ErrNotFound for a missing key.
	Delete(db barter.KVStore, key []byte) error

	Register(name string, r barter.QueryRouter)
}

// NewModelBucket returns a bucket for models of the type of proto.
func NewModelBucket(name string, proto Model) ModelBucket {
	return modelBucket{bucket: NewBucket(name), kind: reflect.TypeOf(proto)}
}

type modelBucket struct {
	bucket Bucket
	kind   reflect.Type
}

var _ ModelBucket = modelBucket{}

func (mb modelBucket) checkKind(m Model) error {
	if reflect.TypeOf(m) != mb.kind {
		return errors.Wrapf(errors.ErrType, "%T in a bucket of %s", m, mb.kind)
	}
	return nil
}

func (mb modelBucket) One(db barter.ReadOnlyKVStore, key []byte, dst Model) error {
	if err := mb.checkKind(dst); err != nil {
		return err
	}
	raw, err := mb.bucket.Get(db, key)
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.bucket.Name(), key)
	}
	return errors.Wrapf(dst.Unmarshal(raw), "decode %s", mb.kind)
}

func (mb modelBucket) Has(db barter.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "%s without key", mb.bucket.Name())
	}
	ok, err := db.Has(mb.bucket.DBKey(key))
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.bucket.Name(), key)
	}
	return nil
}

func (mb modelBucket) Put(db barter.KVStore, key []byte, m Model) error {
	if err := mb.checkKind(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s", mb.kind)
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "encode %s", mb.kind)
	}
	return mb.bucket.Set(db, key, raw)
}

func (mb modelBucket) Delete(db barter.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.bucket.Delete(db, key)
}

func (mb modelBucket) Register(name string, r barter.QueryRouter) {
	mb.bucket.Register(name, r)
}
