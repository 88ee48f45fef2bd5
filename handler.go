package barter

import (
	"encoding/json"

	"github.com/iov-one/barter/errors"
)

// Checker validates a transaction against the state without committing to
// it. Check runs for the mempool.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction included in a block.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Handler processes the messages of one or a few paths, for example
// "escrow/open".
type Handler interface {
	Checker
	Deliverer
}

// Decorator is middleware around a Handler. It may change the context or
// the store before calling next, or skip next entirely.
type Decorator interface {
	Check(ctx Context, db KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the genesis app_state, one JSON document per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the document under key into dst. A missing key
// leaves dst untouched.
func (o Options) ReadOptions(key string, dst interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of one extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers runs initializers in order and stops at the first
// failure.
type ChainInitializers []Initializer

var _ Initializer = ChainInitializers{}

func (c ChainInitializers) FromGenesis(opts Options, db KVStore) error {
	for _, init := range c {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
