package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
)

func TestCoinArithmetic(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		sum     Coin
		sumErr  *errors.Error
		diff    Coin
		diffErr *errors.Error
	}{
		"same currency": {
			a:    NewCoin(100, "AAA"),
			b:    NewCoin(40, "AAA"),
			sum:  NewCoin(140, "AAA"),
			diff: NewCoin(60, "AAA"),
		},
		"zero operand": {
			a:    NewCoin(7, "AAA"),
			b:    NewCoin(0, "AAA"),
			sum:  NewCoin(7, "AAA"),
			diff: NewCoin(7, "AAA"),
		},
		"blank zero is neutral in sums": {
			a:       Coin{},
			b:       NewCoin(5, "BBB"),
			sum:     NewCoin(5, "BBB"),
			diffErr: errors.ErrCurrency,
		},
		"exact balance": {
			a:    NewCoin(50, "BBB"),
			b:    NewCoin(50, "BBB"),
			sum:  NewCoin(100, "BBB"),
			diff: NewCoin(0, "BBB"),
		},
		"shortfall": {
			a:       NewCoin(49, "BBB"),
			b:       NewCoin(50, "BBB"),
			sum:     NewCoin(99, "BBB"),
			diffErr: errors.ErrInsufficientAmount,
		},
		"overflow": {
			a:      NewCoin(math.MaxUint64, "AAA"),
			b:      NewCoin(1, "AAA"),
			sumErr: errors.ErrOverflow,
			diff:   NewCoin(math.MaxUint64-1, "AAA"),
		},
		"currency mismatch": {
			a:       NewCoin(10, "AAA"),
			b:       NewCoin(1, "BBB"),
			sumErr:  errors.ErrCurrency,
			diffErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			sum, err := tc.a.Add(tc.b)
			assert.IsErr(t, tc.sumErr, err)
			if tc.sumErr == nil {
				assert.Equal(t, tc.sum, sum)
			}
			diff, err := tc.a.Subtract(tc.b)
			assert.IsErr(t, tc.diffErr, err)
			if tc.diffErr == nil {
				assert.Equal(t, tc.diff, diff)
			}
		})
	}
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		c       Coin
		wantErr *errors.Error
	}{
		"valid":            {c: NewCoin(1, "AAA")},
		"zero is valid":    {c: NewCoin(0, "GOLD2")},
		"longest ticker":   {c: NewCoin(1, "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345")},
		"ticker too long":  {c: NewCoin(1, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456"), wantErr: errors.ErrCurrency},
		"ticker too short": {c: NewCoin(1, "AB"), wantErr: errors.ErrCurrency},
		"lower case":       {c: NewCoin(1, "aaa"), wantErr: errors.ErrCurrency},
		"leading digit":    {c: NewCoin(1, "1AA"), wantErr: errors.ErrCurrency},
		"missing ticker":   {c: NewCoin(1, ""), wantErr: errors.ErrCurrency},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.c.Validate())
		})
	}
}

func TestCoinJSON(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr *errors.Error
	}{
		"object":             {raw: `{"amount": 12, "ticker": "AAA"}`, want: NewCoin(12, "AAA")},
		"object, no amount":  {raw: `{"ticker": "AAA"}`, want: NewCoin(0, "AAA")},
		"empty object":       {raw: `{}`, want: Coin{}},
		"human":              {raw: `"100 BBB"`, want: NewCoin(100, "BBB")},
		"human, no space":    {raw: `"1BBB"`, want: NewCoin(1, "BBB")},
		"human, many spaces": {raw: `"5     BBB"`, want: NewCoin(5, "BBB")},
		"fraction":           {raw: `"1.5 BBB"`, wantErr: errors.ErrInput},
		"negative":           {raw: `"-4 BBB"`, wantErr: errors.ErrInput},
		"amount only":        {raw: `"12"`, wantErr: errors.ErrInput},
		"ticker only":        {raw: `"BBB"`, wantErr: errors.ErrInput},
		"too large":          {raw: `"18446744073709551616 BBB"`, wantErr: errors.ErrOverflow},
		"wrong type":         {raw: `[1]`, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Coin
			err := json.Unmarshal([]byte(tc.raw), &got)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestCoinString(t *testing.T) {
	assert.Equal(t, "100 AAA", NewCoin(100, "AAA").String())
	assert.Equal(t, "3", NewCoin(3, "").String())

	c := NewCoin(math.MaxUint64, "VAULT")
	parsed, err := ParseHumanFormat(c.String())
	assert.Nil(t, err)
	assert.Equal(t, c, parsed)
}

func TestCoinProtobuf(t *testing.T) {
	c := NewCoin(math.MaxUint64, "ESCROWED")
	raw, err := c.Marshal()
	assert.Nil(t, err)

	var got Coin
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, c, got)

	err = got.Unmarshal([]byte{0xff, 0xff})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestCoinClone(t *testing.T) {
	var missing *Coin
	assert.Equal(t, true, missing.Clone() == nil)
	assert.Equal(t, true, IsEmpty(missing))

	orig := NewCoinp(5, "AAA")
	cpy := orig.Clone()
	cpy.Amount = 6
	assert.Equal(t, uint64(5), orig.Amount)
	assert.Equal(t, false, IsEmpty(orig))
}
