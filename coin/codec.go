package coin

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/errors"
)

// Coin can hold any amount of one currency. Amounts are whole units of the
// smallest denomination.
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

// coinPB has no Marshal method of its own, so the reflection based codec does
// not call back into Coin.
type coinPB Coin

func (m *Coin) Reset()      { *m = Coin{} }
func (*Coin) ProtoMessage() {}

func (m *coinPB) Reset()         { *m = coinPB{} }
func (m *coinPB) String() string { return proto.CompactTextString(m) }
func (*coinPB) ProtoMessage()    {}

func (m *Coin) Marshal() ([]byte, error) {
	return proto.Marshal((*coinPB)(m))
}

func (m *Coin) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*coinPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (m *Coin) GetTicker() string {
	if m != nil {
		return m.Ticker
	}
	return ""
}

func (m *Coin) GetAmount() uint64 {
	if m != nil {
		return m.Amount
	}
	return 0
}
