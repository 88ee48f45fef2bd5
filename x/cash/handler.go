package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
)

// RegisterRoutes registers the SendMsg handler.
func RegisterRoutes(r barter.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery serves the wallets under "/wallets".
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler moves coins between wallets on behalf of the owner of the
// source.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ barter.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check verifies the message and the signature only. Balances are left to
// Deliver.
func (h SendHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	msg, err := load(tx)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "not signed by %s", msg.Source)
	}
	return &barter.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver transfers the amount. The ledger matches the signers against the
// owner of the source wallet, which keeps escrow vaults out of reach.
func (h SendHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, err := load(tx)
	if err != nil {
		return nil, err
	}
	err = h.control.Transfer(ctx, db, NewSignerAuthority(h.auth), msg.Source, msg.Destination, *msg.Amount)
	if err != nil {
		return nil, err
	}
	return &barter.DeliverResult{}, nil
}

func load(tx barter.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}
