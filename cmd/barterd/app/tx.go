package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/cash"
	"github.com/iov-one/barter/x/escrow"
	"github.com/iov-one/barter/x/sigs"
)

// Tx is the transaction accepted by barterd. It carries the signatures and
// exactly one message.
type Tx struct {
	Signatures       []*sigs.StdSignature  `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	SendMsg          *cash.SendMsg         `protobuf:"bytes,2,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	OpenEscrowMsg    *escrow.OpenMsg       `protobuf:"bytes,3,opt,name=open_escrow_msg,json=openEscrowMsg,proto3" json:"open_escrow_msg,omitempty"`
	FulfillEscrowMsg *escrow.FulfillMsg    `protobuf:"bytes,4,opt,name=fulfill_escrow_msg,json=fulfillEscrowMsg,proto3" json:"fulfill_escrow_msg,omitempty"`
	BumpSequenceMsg  *sigs.BumpSequenceMsg `protobuf:"bytes,5,opt,name=bump_sequence_msg,json=bumpSequenceMsg,proto3" json:"bump_sequence_msg,omitempty"`
}

type txPB Tx

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString((*txPB)(m)) }
func (*Tx) ProtoMessage()    {}

func (m *txPB) Reset()         { *m = txPB{} }
func (m *txPB) String() string { return proto.CompactTextString(m) }
func (*txPB) ProtoMessage()    {}

func (m *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txPB)(m))
}

func (m *Tx) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*txPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (barter.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ barter.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction. The
// signatures field is not a message and is skipped.
func (m *Tx) GetMsg() (barter.Msg, error) {
	return barter.ExtractMsgFromFields(m)
}

// GetSignatures returns the signatures of the transaction.
func (m *Tx) GetSignatures() []*sigs.StdSignature {
	return m.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are not part of them.
func (m *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *m
	unsigned.Signatures = nil
	return unsigned.Marshal()
}
