/*
Package currency is the registry of mints. An asset can be held and
escrowed only after its ticker was registered here.
*/
package currency

import (
	"regexp"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

var isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString

const maxDecimals = 18

var _ orm.Model = (*TokenInfo)(nil)

func (t *TokenInfo) Validate() error {
	var err error
	if !isTokenName(t.Name) {
		err = errors.AppendField(err, "Name", errors.ErrModel)
	}
	if t.Decimals > maxDecimals {
		err = errors.AppendField(err, "Decimals", errors.ErrModel)
	}
	return err
}

// TokenInfoBucket stores TokenInfo instances, using ticker name (currency
// symbol) as the key.
type TokenInfoBucket struct {
	orm.ModelBucket
}

func NewTokenInfoBucket() *TokenInfoBucket {
	return &TokenInfoBucket{
		ModelBucket: orm.NewModelBucket("tokeninfo", &TokenInfo{}),
	}
}

// Get returns the token registered under the ticker or ErrNotFound.
func (b *TokenInfoBucket) Get(db barter.ReadOnlyKVStore, ticker string) (*TokenInfo, error) {
	var t TokenInfo
	if err := b.One(db, []byte(ticker), &t); err != nil {
		return nil, errors.Wrapf(err, "ticker %q", ticker)
	}
	return &t, nil
}

// Save registers a token. A ticker can be registered only once.
func (b *TokenInfoBucket) Save(db barter.KVStore, ticker string, t *TokenInfo) error {
	if !coin.IsCC(ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
	}
	switch err := b.Has(db, []byte(ticker)); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "ticker %q", ticker)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return b.Put(db, []byte(ticker), t)
}

// RegisterQuery will register the mints as "/tokens"
func RegisterQuery(qr barter.QueryRouter) {
	NewTokenInfoBucket().Register("tokens", qr)
}
