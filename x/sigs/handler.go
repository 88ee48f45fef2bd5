package sigs

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
)

const pathBumpSequenceMsg = "sigs/bump_sequence"

// maxSequenceIncrement bounds a single bump.
const maxSequenceIncrement = 1000

var _ barter.Msg = (*BumpSequenceMsg)(nil)

func (BumpSequenceMsg) Path() string { return pathBumpSequenceMsg }

func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < 1 || msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment %d not in [1, %d]", msg.Increment, maxSequenceIncrement)
	}
	return nil
}

// RegisterRoutes registers the sequence bump, which lets a signer
// invalidate transactions it signed but did not submit.
func RegisterRoutes(r barter.Registry, auth x.Authenticator) {
	r.Handle(pathBumpSequenceMsg, bumpSequenceHandler{auth: auth, bucket: NewBucket()})
}

type bumpSequenceHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h bumpSequenceHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, err := h.load(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{}, nil
}

// Deliver adds Increment minus one to the signer sequence. The signature
// of this very transaction already consumed one.
func (h bumpSequenceHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	user, msg, err := h.load(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if msg.Increment > 1 {
		user.Sequence += int64(msg.Increment) - 1
		if err := h.bucket.Save(db, user); err != nil {
			return nil, errors.Wrap(err, "save account")
		}
	}
	return &barter.DeliverResult{}, nil
}

func (h bumpSequenceHandler) load(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	var user UserData
	if err := h.bucket.One(db, signer.Address(), &user); err != nil {
		return nil, nil, errors.Wrap(err, "load account")
	}
	if user.Sequence+int64(msg.Increment) > maxSequence {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	return &user, &msg, nil
}
