package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// BucketName is where escrow records are stored, keyed by record address.
const BucketName = "escrow"

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a escrow.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &EscrowRecord{}),
	}
}

// Get returns the record stored under the address or ErrNotFound.
func (b Bucket) Get(db barter.ReadOnlyKVStore, addr barter.Address) (*EscrowRecord, error) {
	var r EscrowRecord
	if err := b.One(db, addr, &r); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", addr)
	}
	return &r, nil
}

// Create stores a new record. It fails with ErrDuplicate if a record
// already exists under the address.
func (b Bucket) Create(db barter.KVStore, addr barter.Address, r *EscrowRecord) error {
	switch err := b.Has(db, addr); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "escrow %s", addr)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Put(db, addr, r)
}
