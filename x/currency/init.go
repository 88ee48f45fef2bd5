package currency

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ barter.Initializer = (*Initializer)(nil)

// FromGenesis will parse the registered mints from genesis and save them to
// the database
func (*Initializer) FromGenesis(opts barter.Options, kv barter.KVStore) error {
	var tokens []struct {
		Ticker   string `json:"ticker"`
		Name     string `json:"name"`
		Decimals uint32 `json:"decimals"`
	}
	if err := opts.ReadOptions("currencies", &tokens); err != nil {
		return err
	}

	bucket := NewTokenInfoBucket()
	for _, t := range tokens {
		info := &TokenInfo{Name: t.Name, Decimals: t.Decimals}
		if err := bucket.Save(kv, t.Ticker, info); err != nil {
			return errors.Wrapf(err, "token %q", t.Ticker)
		}
	}
	return nil
}
