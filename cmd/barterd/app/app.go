/*
Package app assembles the barterd node: the extensions, their decorator
stack and the persistent store.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/app"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store/iavl"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/cash"
	"github.com/iov-one/barter/x/currency"
	"github.com/iov-one/barter/x/escrow"
	"github.com/iov-one/barter/x/sigs"
	"github.com/iov-one/barter/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported by the ABCI Info call.
const Name = "barterd"

// Authenticator accepts ed25519 signers only.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain is the middleware every transaction passes before its handler.
// Check runs in a savepoint so a rejected transaction leaves the mempool
// state alone. In Deliver the savepoint sits below the signature check:
// a failing message still consumes the sequence of its signers.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router registers the cash, escrow and sigs messages. Cash and escrow
// share one ledger.
func Router(auth x.Authenticator) *app.Router {
	r := app.NewRouter()
	ledger := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, auth, ledger)
	escrow.RegisterRoutes(r, auth, ledger)
	sigs.RegisterRoutes(r, auth)
	return r
}

// QueryRouter serves "/wallets", "/tokens", "/escrows" and "/auth".
func QueryRouter() barter.QueryRouter {
	qr := barter.NewQueryRouter()
	qr.RegisterAll(cash.RegisterQuery, currency.RegisterQuery, escrow.RegisterQuery, sigs.RegisterQuery)
	return qr
}

// Initializers loads the genesis state. Currencies go first because the
// wallets refer to them.
func Initializers() barter.Initializer {
	return barter.ChainInitializers{
		&currency.Initializer{},
		cash.Initializer{},
		escrow.Initializer{},
	}
}

// Stack is the full transaction handler of the node.
func Stack() barter.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Application returns the ABCI application over the database at dbPath.
// An empty path keeps everything in memory.
func Application(name string, h barter.Handler, decode barter.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	db, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	s, err := app.NewStoreApp(name, db, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	s.WithInit(Initializers())
	return app.NewBaseApp(s, decode, h, debug), nil
}

// CommitKVStore opens the iavl database at dbPath. A trailing extension
// such as ".db" is ignored.
func CommitKVStore(dbPath string) (barter.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore()
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs))
}

// GenerateApp builds the application for the start command. The database
// lives in home, or in memory when home is empty.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "barter.db")
	}
	a, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	a.WithLogger(logger)
	return a, nil
}
