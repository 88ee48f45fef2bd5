/*
Package sigs authenticates transactions by their ed25519 signatures and
keeps a sequence per signer so a signed transaction can be applied only
once.
*/
package sigs

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// signatureVerifyCost is the gas charged in Check per verified signature.
const signatureVerifyCost = 500

// RegisterQuery exposes the signer accounts under "/auth".
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and makes the signers
// available to the handlers below through Authenticate.
type Decorator struct {
	allowMissingSigs bool
}

var _ barter.Decorator = Decorator{}

// NewDecorator returns a Decorator that rejects unsigned transactions.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets transactions without signatures pass with no
// signers.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	ctx, n, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n) * signatureVerifyCost
	return res, nil
}

func (d Decorator) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	ctx, _, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// verify returns ctx carrying the signers and their count. Transactions
// that cannot carry signatures pass untouched.
func (d Decorator) verify(ctx barter.Context, db barter.KVStore, tx barter.Tx) (barter.Context, int, error) {
	signed, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, signed, barter.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "no signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
