package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

var _ orm.Model = (*Wallet)(nil)

// Validate requires that all coins are in alphabetical order and the owner,
// if set, is a valid address.
func (w *Wallet) Validate() error {
	var err error
	if len(w.Owner) != 0 {
		err = errors.AppendField(err, "Owner", w.Owner.Validate())
	}
	return errors.AppendField(err, "Coins", coin.Coins(w.Coins).Validate())
}

// Balance returns the coins stored in the wallet
func (w *Wallet) Balance() coin.Coins {
	return coin.Coins(w.Coins)
}

// IsCustody returns true if funds of this wallet are controlled by an owner
// rather than by the wallet address.
func (w *Wallet) IsCustody() bool {
	return len(w.Owner) != 0
}

// OwnerOf returns the address that controls the funds of the wallet stored
// under addr.
func (w *Wallet) OwnerOf(addr barter.Address) barter.Address {
	if w.IsCustody() {
		return w.Owner
	}
	return addr
}

// Add modifies the wallet to add Coin c
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Balance().Clone().Add(c)
	if err != nil {
		return err
	}
	w.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove Coin c
func (w *Wallet) Subtract(c coin.Coin) error {
	cs, err := w.Balance().Clone().Subtract(c)
	if err != nil {
		return err
	}
	w.Coins = cs
	return nil
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// Get returns the wallet stored under the address or ErrNotFound.
func (b Bucket) Get(db barter.ReadOnlyKVStore, addr barter.Address) (*Wallet, error) {
	var w Wallet
	if err := b.One(db, addr, &w); err != nil {
		return nil, errors.Wrapf(err, "wallet %s", addr)
	}
	return &w, nil
}

// GetOrCreate returns the wallet stored under the address or a new empty
// one. A new wallet is not saved.
func (b Bucket) GetOrCreate(db barter.ReadOnlyKVStore, addr barter.Address) (*Wallet, error) {
	switch w, err := b.Get(db, addr); {
	case err == nil:
		return w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}

// Save stores the wallet under the address.
func (b Bucket) Save(db barter.KVStore, addr barter.Address, w *Wallet) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return b.Put(db, addr, w)
}
