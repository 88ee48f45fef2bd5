package escrow

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// EscrowRecord is the on-chain state of an open escrow. It exists from a
// successful open until a successful fulfill.
type EscrowRecord struct {
	// Seed distinguishes escrows opened by the same maker.
	Seed  uint64
	Maker barter.Address
	// Taker is never durably set because fulfill destroys the record. It
	// is kept in the layout.
	Taker  barter.Address
	AssetA string
	AssetB string
	// VaultA is the custody account holding the deposited asset A.
	VaultA barter.Address
	// VaultB is reserved and always empty.
	VaultB          barter.Address
	RequiredAmountB uint64
	// Bump is the value that made the record address fall off the curve.
	Bump uint8
}

var _ orm.Model = (*EscrowRecord)(nil)

const (
	discriminatorSize = 8
	tickerFieldSize   = 32

	// RecordSize is the length of a serialized EscrowRecord.
	RecordSize = discriminatorSize + // discriminator
		8 + // seed
		barter.AddressLength + // maker
		1 + barter.AddressLength + // taker flag and taker
		tickerFieldSize + // asset A
		tickerFieldSize + // asset B
		barter.AddressLength + // vault A
		barter.AddressLength + // vault B
		8 + // required amount B
		1 // bump
)

// recordDiscriminator prefixes every serialized record.
var recordDiscriminator = func() []byte {
	h := sha256.Sum256([]byte("account:EscrowRecord"))
	return h[:discriminatorSize]
}()

// Validate ensures the record is consistent.
func (r *EscrowRecord) Validate() error {
	var err error
	err = errors.AppendField(err, "Maker", r.Maker.Validate())
	if len(r.Taker) != 0 {
		err = errors.AppendField(err, "Taker", r.Taker.Validate())
	}
	if !coin.IsCC(r.AssetA) {
		err = errors.Append(err, errors.Field("AssetA", errors.ErrCurrency, "invalid ticker"))
	}
	if !coin.IsCC(r.AssetB) {
		err = errors.Append(err, errors.Field("AssetB", errors.ErrCurrency, "invalid ticker"))
	}
	if r.AssetA == r.AssetB {
		err = errors.Append(err, errors.Field("AssetB", errors.ErrInput, "must differ from AssetA"))
	}
	err = errors.AppendField(err, "VaultA", r.VaultA.Validate())
	if len(r.VaultB) != 0 {
		err = errors.Append(err, errors.Field("VaultB", errors.ErrState, "reserved"))
	}
	if r.RequiredAmountB == 0 {
		err = errors.Append(err, errors.Field("RequiredAmountB", errors.ErrAmount, "must be positive"))
	}
	return err
}

// Marshal serializes the record into its fixed size layout. All integers
// are little endian.
func (r *EscrowRecord) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(RecordSize)
	buf.Write(recordDiscriminator)
	writeUint64(&buf, r.Seed)

	if err := writeAddress(&buf, r.Maker); err != nil {
		return nil, errors.Wrap(err, "maker")
	}
	if len(r.Taker) == 0 {
		buf.WriteByte(0)
	} else {
		buf.WriteByte(1)
	}
	if err := writeAddress(&buf, r.Taker); err != nil {
		return nil, errors.Wrap(err, "taker")
	}
	if err := writeTicker(&buf, r.AssetA); err != nil {
		return nil, errors.Wrap(err, "asset A")
	}
	if err := writeTicker(&buf, r.AssetB); err != nil {
		return nil, errors.Wrap(err, "asset B")
	}
	if err := writeAddress(&buf, r.VaultA); err != nil {
		return nil, errors.Wrap(err, "vault A")
	}
	if err := writeAddress(&buf, r.VaultB); err != nil {
		return nil, errors.Wrap(err, "vault B")
	}
	writeUint64(&buf, r.RequiredAmountB)
	buf.WriteByte(r.Bump)
	return buf.Bytes(), nil
}

// Unmarshal loads the record from its serialized form. It fails if the
// data has the wrong size or does not start with the record discriminator.
func (r *EscrowRecord) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrInput, "record size %d, want %d", len(raw), RecordSize)
	}
	if !bytes.Equal(raw[:discriminatorSize], recordDiscriminator) {
		return errors.Wrap(errors.ErrInput, "not an escrow record")
	}
	d := decoder{raw: raw[discriminatorSize:]}

	var rec EscrowRecord
	rec.Seed = d.u64()
	rec.Maker = d.address()
	switch flag := d.u8(); flag {
	case 0:
		d.address()
	case 1:
		rec.Taker = d.address()
	default:
		return errors.Wrapf(errors.ErrInput, "invalid taker flag %d", flag)
	}
	rec.AssetA = d.ticker()
	rec.AssetB = d.ticker()
	rec.VaultA = d.address()
	rec.VaultB = d.address()
	rec.RequiredAmountB = d.u64()
	rec.Bump = d.u8()

	*r = rec
	return nil
}

// String returns a human readable representation of the record.
func (r *EscrowRecord) String() string {
	return fmt.Sprintf("escrow(maker=%s seed=%d %s for %d %s vault=%s)",
		r.Maker, r.Seed, r.AssetA, r.RequiredAmountB, r.AssetB, r.VaultA)
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

// writeAddress writes the address or zeros if it is empty.
func writeAddress(buf *bytes.Buffer, a barter.Address) error {
	switch len(a) {
	case 0:
		buf.Write(make([]byte, barter.AddressLength))
	case barter.AddressLength:
		buf.Write(a)
	default:
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

func writeTicker(buf *bytes.Buffer, ticker string) error {
	if len(ticker) > tickerFieldSize {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q too long", ticker)
	}
	field := make([]byte, tickerFieldSize)
	copy(field, ticker)
	buf.Write(field)
	return nil
}

// decoder reads fixed size fields. The caller checks the total length
// upfront.
type decoder struct {
	raw []byte
}

func (d *decoder) next(n int) []byte {
	b := d.raw[:n]
	d.raw = d.raw[n:]
	return b
}

func (d *decoder) u8() uint8 {
	return d.next(1)[0]
}

func (d *decoder) u64() uint64 {
	return binary.LittleEndian.Uint64(d.next(8))
}

// address returns nil for an all zero field.
func (d *decoder) address() barter.Address {
	b := d.next(barter.AddressLength)
	if isZero(b) {
		return nil
	}
	return append(barter.Address(nil), b...)
}

func (d *decoder) ticker() string {
	return string(bytes.TrimRight(d.next(tickerFieldSize), "\x00"))
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
