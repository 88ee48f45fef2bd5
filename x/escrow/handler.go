package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/cash"
)

const (
	// pay escrow cost up-front
	openEscrowCost    int64 = 300
	fulfillEscrowCost int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r barter.Registry, auth x.Authenticator, ledger cash.Controller) {
	m := NewManager(ledger)
	r.Handle(pathOpenMsg, OpenHandler{auth: auth, manager: m})
	r.Handle(pathFulfillMsg, FulfillHandler{auth: auth, manager: m})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// OpenHandler opens new escrows.
type OpenHandler struct {
	auth    x.Authenticator
	manager *Manager
}

var _ barter.Handler = OpenHandler{}

// Check verifies the escrow can be opened and returns the cost of
// executing it.
func (h OpenHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	var msg OpenMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, _, err := h.manager.prepareOpen(ctx, db, cash.NewSignerAuthority(h.auth), &msg); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: openEscrowCost}, nil
}

// Deliver creates the escrow record and moves the deposit into the vault.
// The record address is returned as the result data.
func (h OpenHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	var msg OpenMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	rec, addr, err := h.manager.Open(ctx, db, cash.NewSignerAuthority(h.auth), &msg)
	if err != nil {
		recordFailure("open", err)
		return nil, err
	}
	openedTotal.Inc()
	barter.GetLogger(ctx).Info("escrow opened",
		"escrow", addr,
		"maker", rec.Maker,
		"seed", rec.Seed,
		"vault", rec.VaultA)
	return &barter.DeliverResult{Data: addr}, nil
}

// FulfillHandler settles open escrows.
type FulfillHandler struct {
	auth    x.Authenticator
	manager *Manager
}

var _ barter.Handler = FulfillHandler{}

// Check verifies the escrow can be fulfilled by the signer and returns
// the cost of executing it. Balances are not checked.
func (h FulfillHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	var msg FulfillMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.manager.prepareFulfill(ctx, db, cash.NewSignerAuthority(h.auth), &msg); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: fulfillEscrowCost}, nil
}

// Deliver executes the swap and destroys the escrow record.
func (h FulfillHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	var msg FulfillMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	s, err := h.manager.Fulfill(ctx, db, cash.NewSignerAuthority(h.auth), &msg)
	if err != nil {
		recordFailure("fulfill", err)
		return nil, err
	}
	fulfilledTotal.Inc()
	settledAmount.Observe(float64(s.Released.Amount))
	barter.GetLogger(ctx).Info("escrow fulfilled",
		"escrow", s.Escrow,
		"maker", s.Record.Maker,
		"taker", s.Taker,
		"paid", s.Paid.String(),
		"released", s.Released.String())
	return &barter.DeliverResult{}, nil
}
