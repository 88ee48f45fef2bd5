package utils

import (
	"github.com/iov-one/barter"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag under which ActionTagger records the message path.
// Clients subscribe to "action='escrow/fulfill'" to follow settlements.
const ActionKey = "action"

// ActionTagger tags every successful Deliver with the message path.
type ActionTagger struct{}

var _ barter.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver reads the message before dispatching, so an undecodable
// transaction never reaches the handler.
func (ActionTagger) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	return res, nil
}
