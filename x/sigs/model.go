package sigs

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// BucketName holds one UserData per signer address.
const BucketName = "sigs"

// maxSequence is the largest integer a javascript client represents
// exactly.
const maxSequence = 1<<53 - 1

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Field("Sequence", ErrInvalidSequence, "negative")
	case u.Sequence > 0 && u.Pubkey == nil:
		return errors.Field("Sequence", ErrInvalidSequence, "used without a public key")
	}
	return nil
}

// CheckAndIncrementSequence consumes the sequence seq. It fails unless seq
// is the next unused one.
func (u *UserData) CheckAndIncrementSequence(seq int64) error {
	if seq != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "got %d, next is %d", seq, u.Sequence)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	u.Sequence++
	return nil
}

// Bucket keys UserData by the address of the public key.
type Bucket struct {
	orm.ModelBucket
}

func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName, &UserData{})}
}

// GetOrCreate loads the account of pubkey. An unknown key gets a fresh
// account at sequence zero, which is not saved.
func (b Bucket) GetOrCreate(db barter.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var u UserData
	err := b.One(db, pubkey.Address(), &u)
	if errors.ErrNotFound.Is(err) {
		return &UserData{Pubkey: pubkey}, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (b Bucket) Save(db barter.KVStore, u *UserData) error {
	if u.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "account without public key")
	}
	return b.Put(db, u.Pubkey.Address(), u)
}
