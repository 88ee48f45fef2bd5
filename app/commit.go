package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// CommitStore keeps two scratch states on top of the committed one: deliver
// collects the block being executed and check validates mempool
// transactions. Commit persists deliver and restarts both from the new
// state.
type CommitStore struct {
	committed barter.CommitKVStore
	deliver   barter.KVCacheWrap
	check     barter.KVCacheWrap
}

// NewCommitStore loads the latest version of store.
func NewCommitStore(store barter.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs, nil
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and hash of the last commit.
func (cs *CommitStore) CommitInfo() (barter.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit writes the delivered block to disk. Pending check state is
// dropped.
func (cs *CommitStore) Commit() (barter.CommitID, error) {
	cs.check.Discard()
	if err := cs.deliver.Write(); err != nil {
		return barter.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() barter.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() barter.CacheableKVStore {
	return cs.deliver
}

// chainIDKey lives outside of every bucket. Bucket names cannot start
// with an underscore.
var chainIDKey = []byte("_bt:chainID")

// loadChainID returns an empty string for a store that was never
// initialized.
func loadChainID(db barter.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(raw), nil
}

// saveChainID writes the chain id once. A second call fails with
// ErrUnauthorized.
func saveChainID(db barter.KVStore, chainID string) error {
	if !barter.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch ok, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case ok:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	return db.Set(chainIDKey, []byte(chainID))
}
