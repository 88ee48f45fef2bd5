package barter

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/barter/errors"
)

// AddressLength is the size of every address. Addresses are full sha256
// digests, so signer addresses and derived escrow addresses share one key
// space.
const AddressLength = sha256.Size

// bech32HRP is the human readable part of bech32 encoded addresses.
const bech32HRP = "barter"

// Address identifies an account. It is the digest of a Condition or of a
// set of derivation seeds.
type Address []byte

// NewAddress hashes data into an address. Nil data gives a nil address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return sum[:]
}

func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate checks the length.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address of %d bytes", len(a))
	}
	return nil
}

// String returns upper case hex, or "(nil)" for an empty address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns the address as "bech32:barter1...", a form ParseAddress
// accepts.
func (a Address) Bech32() (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	enc, err := bech32.Encode(bech32HRP, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return "bech32:" + enc, nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.hex())
}

func (a Address) hex() string {
	return strings.ToUpper(hex.EncodeToString(a))
}

// UnmarshalJSON reads any form ParseAddress accepts.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress reads an address written as plain hex or with one of the
// prefixes "hex:", "bech32:" or "cond:". The last one takes a condition
// and returns its address. An empty value returns a nil address.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		return nil, nil
	}
	decode, ok := addressDecoders[format]
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown address format %q", format)
	}
	addr, err := decode(value)
	if err != nil {
		return nil, err
	}
	return addr, addr.Validate()
}

var addressDecoders = map[string]func(string) (Address, error){
	"hex": func(s string) (Address, error) {
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "malformed hex")
		}
		return raw, nil
	},
	"bech32": func(s string) (Address, error) {
		_, data, err := bech32.Decode(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		raw, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		return raw, nil
	},
	"cond": func(s string) (Address, error) {
		c, err := parseCondition(s)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	},
}
