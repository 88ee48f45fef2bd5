package coin

import (
	"sort"

	"github.com/iov-one/barter/errors"
)

// Coins is a balance over several currencies. A normalized Coins is sorted
// by ticker, holds each ticker at most once and contains no zero amounts.
// All methods expect the normalized form.
type Coins []*Coin

// Clone returns a deep copy that can be modified freely.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// search returns the position of ticker in cs and whether it is present.
// If it is missing the position is where it would be inserted.
func (cs Coins) search(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

// Add increases the balance of c's currency. The receiver may be modified,
// so clone it first if it is shared.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	i, ok := cs.search(c.Ticker)
	if ok {
		sum, err := cs[i].Add(c)
		if err != nil {
			return nil, err
		}
		cs[i] = &sum
		return cs, nil
	}
	cs = append(cs, nil)
	copy(cs[i+1:], cs[i:])
	cs[i] = &c
	return cs, nil
}

// Subtract decreases the balance of c's currency and drops the currency
// once it reaches zero. The receiver may be modified.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	i, ok := cs.search(c.Ticker)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "have 0 %s, need %s", c.Ticker, c)
	}
	diff, err := cs[i].Subtract(c)
	if err != nil {
		return nil, err
	}
	if diff.IsZero() {
		return append(cs[:i], cs[i+1:]...), nil
	}
	cs[i] = &diff
	return cs, nil
}

// AmountOf returns the balance of one currency, zero if none is held.
func (cs Coins) AmountOf(ticker string) uint64 {
	if i, ok := cs.search(ticker); ok {
		return cs[i].Amount
	}
	return 0
}

func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals is true if both hold the same amounts of the same currencies.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i, c := range cs {
		if !c.Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate reports every coin that breaks the normalized form.
func (cs Coins) Validate() error {
	var err error
	for i, c := range cs {
		if c == nil {
			err = errors.Append(err, errors.Wrapf(errors.ErrEmpty, "coin %d", i))
			continue
		}
		err = errors.Append(err, errors.Wrapf(c.Validate(), "coin %d", i))
		if c.IsZero() {
			err = errors.Append(err, errors.Wrapf(errors.ErrState, "coin %d: zero amount", i))
		}
		if i > 0 && cs[i-1] != nil && cs[i-1].Ticker >= c.Ticker {
			err = errors.Append(err, errors.Wrapf(errors.ErrState, "coin %d: not sorted", i))
		}
	}
	return err
}

// NormalizeCoins merges coins of the same currency, drops zero amounts and
// sorts the result. An empty result is nil.
func NormalizeCoins(cs Coins) (Coins, error) {
	var (
		res Coins
		err error
	)
	for _, c := range cs {
		if IsEmpty(c) {
			continue
		}
		if res, err = res.Add(*c); err != nil {
			return nil, errors.Wrap(err, "normalize")
		}
	}
	return res, nil
}
