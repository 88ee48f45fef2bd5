package coin

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"

	"github.com/iov-one/barter/errors"
)

// IsCC checks a currency code. A ticker must fit into the 32 byte asset
// field of an escrow record.
var IsCC = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,31}$`).MatchString

var humanFormat = regexp.MustCompile(`^(\d+)\s*([A-Z][A-Z0-9]{2,31})$`)

// NewCoin returns amount units of the given currency.
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// NewCoinp is NewCoin returning a pointer, handy for message literals.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// Add returns the sum of both coins. A zero coin without a ticker is
// neutral. Mixing currencies fails with ErrCurrency and a sum that does not
// fit into uint64 fails with ErrOverflow.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case o.IsZero() && o.Ticker == "":
		return c, nil
	case c.IsZero() && c.Ticker == "":
		return o, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot add %s to %s", o.Ticker, c.Ticker)
	case o.Amount > math.MaxUint64-c.Amount:
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	c.Amount += o.Amount
	return c, nil
}

// Subtract returns c reduced by o. Taking more than c holds fails with
// ErrInsufficientAmount.
func (c Coin) Subtract(o Coin) (Coin, error) {
	switch {
	case o.IsZero():
		return c, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot subtract %s from %s", o.Ticker, c.Ticker)
	case c.Amount < o.Amount:
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "have %s, need %s", c, o)
	}
	c.Amount -= o.Amount
	return c, nil
}

// Equals compares both the ticker and the amount.
func (c Coin) Equals(o Coin) bool {
	return c == o
}

// IsEmpty is true for a nil coin or a zero amount.
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

func (c Coin) IsZero() bool {
	return c.Amount == 0
}

func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// Clone returns an independent copy. Nil stays nil.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate checks the currency code only. A zero amount is valid.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker)
	}
	return nil
}

// String returns "<amount> <ticker>", the format ParseHumanFormat reads.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return strconv.FormatUint(c.Amount, 10) + " " + c.Ticker
}

// ParseHumanFormat reads a coin written as "<amount> <ticker>".
func ParseHumanFormat(s string) (Coin, error) {
	m := humanFormat.FindStringSubmatch(s)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format: %q", s)
	}
	amount, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount %s", m[1])
	}
	return NewCoin(amount, m[2]), nil
}

// UnmarshalJSON accepts either the human readable string form or an object
// with ticker and amount fields.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if json.Unmarshal(raw, &human) == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	// a distinct type avoids recursing into this method
	var obj struct {
		Ticker string `json:"ticker"`
		Amount uint64 `json:"amount"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*c = NewCoin(obj.Amount, obj.Ticker)
	return nil
}
