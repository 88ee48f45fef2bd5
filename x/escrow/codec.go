package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
)

// OpenMsg opens a new escrow. The maker deposits DepositAmountA of AssetA
// and asks for RequiredAmountB of AssetB in exchange.
type OpenMsg struct {
	Maker           barter.Address `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Seed            uint64         `protobuf:"varint,2,opt,name=seed,proto3" json:"seed,omitempty"`
	AssetA          string         `protobuf:"bytes,3,opt,name=asset_a,json=assetA,proto3" json:"asset_a,omitempty"`
	AssetB          string         `protobuf:"bytes,4,opt,name=asset_b,json=assetB,proto3" json:"asset_b,omitempty"`
	RequiredAmountB uint64         `protobuf:"varint,5,opt,name=required_amount_b,json=requiredAmountB,proto3" json:"required_amount_b,omitempty"`
	DepositAmountA  uint64         `protobuf:"varint,6,opt,name=deposit_amount_a,json=depositAmountA,proto3" json:"deposit_amount_a,omitempty"`
	// Vault is optional. When set it must be the derived vault address.
	Vault barter.Address `protobuf:"bytes,7,opt,name=vault,proto3" json:"vault,omitempty"`
}

// FulfillMsg settles an open escrow. The assets and the vault are the ones
// the taker expects to trade and must match the record.
type FulfillMsg struct {
	Taker  barter.Address `protobuf:"bytes,1,opt,name=taker,proto3" json:"taker,omitempty"`
	Escrow barter.Address `protobuf:"bytes,2,opt,name=escrow,proto3" json:"escrow,omitempty"`
	AssetA string         `protobuf:"bytes,3,opt,name=asset_a,json=assetA,proto3" json:"asset_a,omitempty"`
	AssetB string         `protobuf:"bytes,4,opt,name=asset_b,json=assetB,proto3" json:"asset_b,omitempty"`
	Vault  barter.Address `protobuf:"bytes,5,opt,name=vault,proto3" json:"vault,omitempty"`
}

// Configuration of the escrow extension.
type Configuration struct {
	// StorageDeposit is taken from the maker when an escrow is opened and
	// refunded when it is fulfilled. Empty disables the deposit.
	StorageDeposit *coin.Coin `protobuf:"bytes,1,opt,name=storage_deposit,json=storageDeposit,proto3" json:"storage_deposit,omitempty"`
	// RefundTarget is either "maker" or "taker".
	RefundTarget string `protobuf:"bytes,2,opt,name=refund_target,json=refundTarget,proto3" json:"refund_target,omitempty"`
	// CloseEmptyVault deletes the vault account after settlement.
	CloseEmptyVault bool `protobuf:"varint,3,opt,name=close_empty_vault,json=closeEmptyVault,proto3" json:"close_empty_vault,omitempty"`
}

type (
	openMsgPB       OpenMsg
	fulfillMsgPB    FulfillMsg
	configurationPB Configuration
)

func (m *OpenMsg) Reset()         { *m = OpenMsg{} }
func (m *OpenMsg) String() string { return proto.CompactTextString((*openMsgPB)(m)) }
func (*OpenMsg) ProtoMessage()    {}

func (m *openMsgPB) Reset()         { *m = openMsgPB{} }
func (m *openMsgPB) String() string { return proto.CompactTextString(m) }
func (*openMsgPB) ProtoMessage()    {}

func (m *OpenMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*openMsgPB)(m))
}

func (m *OpenMsg) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*openMsgPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (m *FulfillMsg) Reset()         { *m = FulfillMsg{} }
func (m *FulfillMsg) String() string { return proto.CompactTextString((*fulfillMsgPB)(m)) }
func (*FulfillMsg) ProtoMessage()    {}

func (m *fulfillMsgPB) Reset()         { *m = fulfillMsgPB{} }
func (m *fulfillMsgPB) String() string { return proto.CompactTextString(m) }
func (*fulfillMsgPB) ProtoMessage()    {}

func (m *FulfillMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*fulfillMsgPB)(m))
}

func (m *FulfillMsg) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*fulfillMsgPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString((*configurationPB)(m)) }
func (*Configuration) ProtoMessage()    {}

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationPB)(m))
}

func (m *Configuration) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, (*configurationPB)(m)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
