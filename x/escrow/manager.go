package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/cash"
)

// Manager creates, loads and destroys escrow records. All funds are moved
// through the ledger controller.
type Manager struct {
	bucket Bucket
	ledger cash.Controller
}

// NewManager returns a manager that moves funds using the given ledger.
func NewManager(ledger cash.Controller) *Manager {
	return &Manager{
		bucket: NewBucket(),
		ledger: ledger,
	}
}

// Load returns the escrow record stored under the address. It returns
// ErrNotFound if the escrow was never opened or is already fulfilled.
func (m *Manager) Load(db barter.ReadOnlyKVStore, addr barter.Address) (*EscrowRecord, error) {
	return m.bucket.Get(db, addr)
}

// destroy deletes the record. Only a successful settlement calls it.
func (m *Manager) destroy(db barter.KVStore, addr barter.Address) error {
	return m.bucket.Delete(db, addr)
}

// Open creates a new escrow and deposits asset A into its vault. The
// authority must authorize the maker. It returns the stored record and its
// address. Nothing is written unless all steps succeed.
func (m *Manager) Open(ctx barter.Context, db barter.KVStore, maker cash.Authority, msg *OpenMsg) (*EscrowRecord, barter.Address, error) {
	rec, addr, err := m.prepareOpen(ctx, db, maker, msg)
	if err != nil {
		return nil, nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}

	err = atomically(db, func(db barter.KVStore) error {
		if err := m.ledger.Allocate(db, rec.VaultA, addr); err != nil {
			return errors.Wrapf(err, "vault %s", rec.VaultA)
		}
		deposit := coin.NewCoin(msg.DepositAmountA, msg.AssetA)
		if err := m.ledger.Transfer(ctx, db, maker, msg.Maker, rec.VaultA, deposit); err != nil {
			return errors.Wrap(err, "deposit")
		}
		if fee, ok := conf.Deposit(); ok {
			if err := m.ledger.Transfer(ctx, db, maker, msg.Maker, addr, fee); err != nil {
				return errors.Wrap(err, "storage deposit")
			}
		}
		return m.bucket.Create(db, addr, rec)
	})
	if err != nil {
		return nil, nil, err
	}
	return rec, addr, nil
}

// prepareOpen validates the request against the current state without
// modifying it and builds the record to be stored.
func (m *Manager) prepareOpen(ctx barter.Context, db barter.ReadOnlyKVStore, maker cash.Authority, msg *OpenMsg) (*EscrowRecord, barter.Address, error) {
	if err := msg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid message")
	}
	if maker == nil || !maker.Authorizes(ctx, msg.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	for _, ticker := range []string{msg.AssetA, msg.AssetB} {
		if _, err := m.ledger.Mint(db, ticker); err != nil {
			return nil, nil, errors.Wrapf(err, "mint %s", ticker)
		}
	}

	addr, bump, err := DeriveRecordAddress(msg.Maker, msg.Seed)
	if err != nil {
		return nil, nil, errors.Wrap(err, "record address")
	}
	vault, err := DeriveVaultAddress(addr, msg.AssetA)
	if err != nil {
		return nil, nil, errors.Wrap(err, "vault address")
	}
	if len(msg.Vault) != 0 && !msg.Vault.Equals(vault) {
		return nil, nil, errors.Wrapf(ErrAssetMismatch, "vault %s is not derived from escrow %s", msg.Vault, addr)
	}

	switch err := m.bucket.Has(db, addr); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}

	rec := &EscrowRecord{
		Seed:            msg.Seed,
		Maker:           msg.Maker,
		AssetA:          msg.AssetA,
		AssetB:          msg.AssetB,
		VaultA:          vault,
		RequiredAmountB: msg.RequiredAmountB,
		Bump:            bump,
	}
	return rec, addr, nil
}

// atomically runs fn on a cache of db. The cache is written only if fn
// succeeds. A store that cannot be cached is used directly and the caller
// is responsible for discarding it.
func atomically(db barter.KVStore, fn func(barter.KVStore) error) error {
	cacheable, ok := db.(barter.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
