package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
)

// UserData is the state kept for every signer: the public key and the next
// sequence expected from it.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

// StdSignature represents the signature, the identity of the signer
// (the Pubkey), and a sequence number to prevent replay attacks.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

// BumpSequenceMsg increments the sequence of the signer by the given value.
// The transaction processing already increments by one, so the total
// increase equals Increment.
type BumpSequenceMsg struct {
	Increment uint32 `protobuf:"varint,1,opt,name=increment,proto3" json:"increment,omitempty"`
}

type (
	userDataPB        UserData
	stdSignaturePB    StdSignature
	bumpSequenceMsgPB BumpSequenceMsg
)

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString((*userDataPB)(m)) }
func (*UserData) ProtoMessage()    {}

func (m *userDataPB) Reset()         { *m = userDataPB{} }
func (m *userDataPB) String() string { return proto.CompactTextString(m) }
func (*userDataPB) ProtoMessage()    {}

func (m *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataPB)(m))
}

func (m *UserData) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*userDataPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString((*stdSignaturePB)(m)) }
func (*StdSignature) ProtoMessage()    {}

func (m *stdSignaturePB) Reset()         { *m = stdSignaturePB{} }
func (m *stdSignaturePB) String() string { return proto.CompactTextString(m) }
func (*stdSignaturePB) ProtoMessage()    {}

func (m *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignaturePB)(m))
}

func (m *StdSignature) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*stdSignaturePB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (m *StdSignature) GetSequence() int64 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

func (m *BumpSequenceMsg) Reset()         { *m = BumpSequenceMsg{} }
func (m *BumpSequenceMsg) String() string { return proto.CompactTextString((*bumpSequenceMsgPB)(m)) }
func (*BumpSequenceMsg) ProtoMessage()    {}

func (m *bumpSequenceMsgPB) Reset()         { *m = bumpSequenceMsgPB{} }
func (m *bumpSequenceMsgPB) String() string { return proto.CompactTextString(m) }
func (*bumpSequenceMsgPB) ProtoMessage()    {}

func (m *BumpSequenceMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*bumpSequenceMsgPB)(m))
}

func (m *BumpSequenceMsg) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*bumpSequenceMsgPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
