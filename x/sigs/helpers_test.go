package sigs

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/crypto"
)

// StdTx is a signed transaction used in tests. Sign bytes are the serialized
// message.
type StdTx struct {
	bartertest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ barter.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &bartertest.Msg{RoutePath: "test/signed", Serialized: payload}
	return &StdTx{Tx: bartertest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// sign appends a signature of the given key with the given sequence.
func sign(t testing.TB, tx *StdTx, key *crypto.PrivateKey, chainID string, seq int64) {
	t.Helper()
	sig, err := SignTx(key, tx, chainID, seq)
	if err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)
}
