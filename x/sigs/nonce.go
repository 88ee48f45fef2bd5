package sigs

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// NextNonce returns the sequence the next signature of signer must use.
// Addresses that never signed start at zero.
func NextNonce(db barter.ReadOnlyKVStore, signer barter.Address) (int64, error) {
	var u UserData
	err := NewBucket().One(db, signer, &u)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "load account")
	}
	return u.Sequence, nil
}
