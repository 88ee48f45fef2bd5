package currency

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter/errors"
)

// TokenInfo describes a registered asset. The ticker is the key under which
// it is stored.
type TokenInfo struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	// Decimals is informational only. All amounts are whole units of the
	// smallest denomination.
	Decimals uint32 `protobuf:"varint,2,opt,name=decimals,proto3" json:"decimals,omitempty"`
}

type tokenInfoPB TokenInfo

func (m *TokenInfo) Reset()         { *m = TokenInfo{} }
func (m *TokenInfo) String() string { return proto.CompactTextString((*tokenInfoPB)(m)) }
func (*TokenInfo) ProtoMessage()    {}

func (m *tokenInfoPB) Reset()         { *m = tokenInfoPB{} }
func (m *tokenInfoPB) String() string { return proto.CompactTextString(m) }
func (*tokenInfoPB) ProtoMessage()    {}

func (m *TokenInfo) Marshal() ([]byte, error) {
	return proto.Marshal((*tokenInfoPB)(m))
}

func (m *TokenInfo) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*tokenInfoPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
