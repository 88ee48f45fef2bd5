package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/errors"
)

// PublicKey holds the raw bytes of a public key. Only ed25519 keys are
// supported.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// PrivateKey holds the raw bytes of an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Signature holds the raw bytes of an ed25519 signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Each type is serialized through an unexported twin that has no Marshal
// method of its own, so that the reflection based codec does not call back
// into it.
type (
	publicKeyPB  PublicKey
	privateKeyPB PrivateKey
	signaturePB  Signature
)

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString((*publicKeyPB)(m)) }
func (*PublicKey) ProtoMessage()    {}

func (m *publicKeyPB) Reset()         { *m = publicKeyPB{} }
func (m *publicKeyPB) String() string { return proto.CompactTextString(m) }
func (*publicKeyPB) ProtoMessage()    {}

func (m *PublicKey) Marshal() ([]byte, error) {
	return proto.Marshal((*publicKeyPB)(m))
}

func (m *PublicKey) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*publicKeyPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (m *PublicKey) GetEd25519() []byte {
	if m == nil {
		return nil
	}
	return m.Ed25519
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return "PrivateKey{***}" }
func (*PrivateKey) ProtoMessage()    {}

func (m *privateKeyPB) Reset()         { *m = privateKeyPB{} }
func (m *privateKeyPB) String() string { return proto.CompactTextString(m) }
func (*privateKeyPB) ProtoMessage()    {}

func (m *PrivateKey) Marshal() ([]byte, error) {
	return proto.Marshal((*privateKeyPB)(m))
}

func (m *PrivateKey) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*privateKeyPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (m *PrivateKey) GetEd25519() []byte {
	if m == nil {
		return nil
	}
	return m.Ed25519
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString((*signaturePB)(m)) }
func (*Signature) ProtoMessage()    {}

func (m *signaturePB) Reset()         { *m = signaturePB{} }
func (m *signaturePB) String() string { return proto.CompactTextString(m) }
func (*signaturePB) ProtoMessage()    {}

func (m *Signature) Marshal() ([]byte, error) {
	return proto.Marshal((*signaturePB)(m))
}

func (m *Signature) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*signaturePB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (m *Signature) GetEd25519() []byte {
	if m == nil {
		return nil
	}
	return m.Ed25519
}
