package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/gconf"
)

const (
	// RefundToMaker returns the storage deposit to the maker.
	RefundToMaker = "maker"
	// RefundToTaker returns the storage deposit to the taker.
	RefundToTaker = "taker"

	confPackage = "escrow"
)

var _ gconf.Configuration = (*Configuration)(nil)

// Validate ensures the configuration is usable.
func (c *Configuration) Validate() error {
	var err error
	if !coin.IsEmpty(c.StorageDeposit) {
		err = errors.AppendField(err, "StorageDeposit", c.StorageDeposit.Validate())
	}
	switch c.RefundTarget {
	case "", RefundToMaker, RefundToTaker:
	default:
		err = errors.Append(err, errors.Field("RefundTarget", errors.ErrInput, "must be maker or taker"))
	}
	return err
}

// Deposit returns the storage deposit and whether it is enabled.
func (c *Configuration) Deposit() (coin.Coin, bool) {
	if coin.IsEmpty(c.StorageDeposit) {
		return coin.Coin{}, false
	}
	return *c.StorageDeposit, true
}

// RefundAddress returns who receives the storage deposit back.
func (c *Configuration) RefundAddress(maker, taker barter.Address) barter.Address {
	if c.RefundTarget == RefundToTaker {
		return taker
	}
	return maker
}

// LoadConfiguration returns the stored configuration. When none was saved
// the defaults are returned: no storage deposit, refund to the maker and
// the vault is kept.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPackage, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{RefundTarget: RefundToMaker}, nil
	default:
		return nil, errors.Wrap(err, "escrow configuration")
	}
}

// SaveConfiguration validates and stores the configuration.
func SaveConfiguration(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, confPackage, conf)
}
