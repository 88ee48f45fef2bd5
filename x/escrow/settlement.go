package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/cash"
)

// Settlement describes a fulfilled escrow.
type Settlement struct {
	Escrow barter.Address
	Record *EscrowRecord
	Taker  barter.Address
	// Paid is the amount of asset B sent by the taker to the maker.
	Paid coin.Coin
	// Released is the vault balance sent to the taker.
	Released coin.Coin
}

// Fulfill settles the escrow. The taker pays the required amount of asset B
// to the maker and receives every coin held by the vault. The storage
// deposit is refunded and the record is destroyed. If any step fails nothing is
// written and the escrow stays open.
func (m *Manager) Fulfill(ctx barter.Context, db barter.KVStore, taker cash.Authority, msg *FulfillMsg) (*Settlement, error) {
	rec, err := m.prepareFulfill(ctx, db, taker, msg)
	if err != nil {
		return nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	escrow := NewAuthority(rec)

	s := Settlement{
		Escrow: msg.Escrow,
		Record: rec,
		Taker:  msg.Taker,
		Paid:   coin.NewCoin(rec.RequiredAmountB, rec.AssetB),
	}
	err = atomically(db, func(db barter.KVStore) error {
		if err := m.ledger.Transfer(ctx, db, taker, msg.Taker, rec.Maker, s.Paid); err != nil {
			return errors.Wrap(err, "payment")
		}

		amount, err := m.ledger.AssetBalance(db, rec.VaultA, rec.AssetA)
		if err != nil {
			return errors.Wrapf(err, "vault %s", rec.VaultA)
		}
		if amount == 0 {
			return errors.Wrapf(errors.ErrState, "vault %s is empty", rec.VaultA)
		}
		s.Released = coin.NewCoin(amount, rec.AssetA)
		if err := m.ledger.Transfer(ctx, db, escrow, rec.VaultA, msg.Taker, s.Released); err != nil {
			return errors.Wrap(err, "release")
		}
		// Other assets sent to the vault cannot be reached once the record
		// is gone.
		if err := m.sweep(ctx, db, escrow, rec.VaultA, msg.Taker); err != nil {
			return errors.Wrap(err, "release vault leftovers")
		}

		if err := m.sweep(ctx, db, escrow, msg.Escrow, conf.RefundAddress(rec.Maker, msg.Taker)); err != nil {
			return errors.Wrap(err, "storage deposit refund")
		}
		if conf.CloseEmptyVault {
			if err := m.closeIfEmpty(db, rec.VaultA); err != nil {
				return errors.Wrapf(err, "close vault %s", rec.VaultA)
			}
		}
		return m.destroy(db, msg.Escrow)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// prepareFulfill validates the request against the current state without
// modifying it.
func (m *Manager) prepareFulfill(ctx barter.Context, db barter.ReadOnlyKVStore, taker cash.Authority, msg *FulfillMsg) (*EscrowRecord, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	if taker == nil || !taker.Authorizes(ctx, msg.Taker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}
	rec, err := m.Load(db, msg.Escrow)
	if err != nil {
		return nil, err
	}
	if rec.AssetA != msg.AssetA || rec.AssetB != msg.AssetB {
		return nil, errors.Wrapf(ErrAssetMismatch, "escrow trades %s for %s", rec.AssetA, rec.AssetB)
	}
	if !rec.VaultA.Equals(msg.Vault) {
		return nil, errors.Wrapf(ErrAssetMismatch, "escrow vault is %s", rec.VaultA)
	}
	if !NewAuthority(rec).Authorizes(ctx, msg.Escrow) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "record does not derive its address")
	}
	return rec, nil
}

// sweep moves everything held by src to dst.
func (m *Manager) sweep(ctx barter.Context, db barter.KVStore, escrow cash.Authority, src, dst barter.Address) error {
	coins, err := m.ledger.Balance(db, src)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return err
	}
	for _, c := range coins.Clone() {
		if err := m.ledger.Transfer(ctx, db, escrow, src, dst, *c); err != nil {
			return err
		}
	}
	return nil
}

// closeIfEmpty deletes the vault account if it holds nothing.
func (m *Manager) closeIfEmpty(db barter.KVStore, vault barter.Address) error {
	coins, err := m.ledger.Balance(db, vault)
	if err != nil {
		return err
	}
	if !coins.IsEmpty() {
		return nil
	}
	return m.ledger.Close(db, vault)
}
