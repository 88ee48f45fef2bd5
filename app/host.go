package app

import (
	"sync"
	"time"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Host executes transactions in process, without a consensus engine.
//
// All calls are serialized. Every execution runs on a fresh cache of the
// store that is written back only if the handler succeeds, so a failed
// transaction leaves no trace.
type Host struct {
	mu      sync.Mutex
	db      barter.CacheableKVStore
	handler barter.Handler
	queries barter.QueryRouter
	base    barter.Context
	height  int64
	now     func() time.Time
}

// NewHost returns a host executing transactions on top of the given store.
// The chain id is loaded from the store if it was initialized before.
func NewHost(ctx barter.Context, db barter.CacheableKVStore, h barter.Handler, qr barter.QueryRouter) (*Host, error) {
	chainID, err := loadChainID(db)
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		ctx = barter.WithChainID(ctx, chainID)
	}
	return &Host{
		db:      db,
		handler: h,
		queries: qr,
		base:    ctx,
		now:     time.Now,
	}, nil
}

// Init stores the chain id and loads the genesis state. It can be called
// only once per store.
func (h *Host) Init(chainID string, opts barter.Options, init barter.Initializer) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.atomically(func(db barter.CacheableKVStore) error {
		if err := saveChainID(db, chainID); err != nil {
			return err
		}
		if init == nil {
			return nil
		}
		return init.FromGenesis(opts, db)
	})
	if err != nil {
		return errors.Wrap(err, "genesis")
	}
	h.base = barter.WithChainID(h.base, chainID)
	return nil
}

// Execute checks and delivers the transaction as the only member of a new
// block. Nothing is written unless both steps succeed.
func (h *Host) Execute(tx barter.Tx) (*barter.DeliverResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := h.blockContext("execute", tx)
	var res *barter.DeliverResult
	err := h.atomically(func(db barter.CacheableKVStore) error {
		check := db.CacheWrap()
		_, err := h.handler.Check(ctx, check, tx)
		check.Discard()
		if err != nil {
			return err
		}
		res, err = h.handler.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	h.height++
	return res, nil
}

// Check runs the transaction check without modifying the state.
func (h *Host) Check(tx barter.Tx) (*barter.CheckResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := h.blockContext("check", tx)
	cache := h.db.CacheWrap()
	defer cache.Discard()
	return h.handler.Check(ctx, cache, tx)
}

// Query returns the models found by the handler registered for the path.
// Queries never modify the state.
func (h *Host) Query(path string, data []byte) ([]barter.Model, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	path, mod := splitPath(path)
	qh := h.queries.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", path)
	}
	cache := h.db.CacheWrap()
	defer cache.Discard()
	return qh.Query(cache, mod, data)
}

// Height returns the number of successfully executed transactions.
func (h *Host) Height() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.height
}

func (h *Host) blockContext(call string, tx barter.Tx) barter.Context {
	ctx := barter.WithHeight(h.base, h.height+1)
	ctx = barter.WithBlockTime(ctx, h.now())
	return barter.WithLogInfo(ctx,
		"call", call,
		"path", barter.GetPath(tx))
}

// atomically runs fn on a cache of the store and writes the cache only if
// fn succeeds.
func (h *Host) atomically(fn func(barter.CacheableKVStore) error) error {
	cache := h.db.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
