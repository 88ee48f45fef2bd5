package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
)

// Wallet holds the coins of one address. A wallet with an Owner is a custody
// account: funds leave it only with an authority over the Owner.
type Wallet struct {
	Owner barter.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Coins []*coin.Coin   `protobuf:"bytes,2,rep,name=coins,proto3" json:"coins,omitempty"`
}

// SendMsg moves coins from the source to the destination wallet.
type SendMsg struct {
	Source      barter.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination barter.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      *coin.Coin     `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string         `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

type (
	walletPB  Wallet
	sendMsgPB SendMsg
)

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString((*walletPB)(m)) }
func (*Wallet) ProtoMessage()    {}

func (m *walletPB) Reset()         { *m = walletPB{} }
func (m *walletPB) String() string { return proto.CompactTextString(m) }
func (*walletPB) ProtoMessage()    {}

func (m *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletPB)(m))
}

func (m *Wallet) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*walletPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString((*sendMsgPB)(m)) }
func (*SendMsg) ProtoMessage()    {}

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgPB)(m))
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*sendMsgPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
