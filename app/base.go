package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp completes StoreApp into an abci.Application by decoding
// transactions and passing them to a handler.
type BaseApp struct {
	*StoreApp
	decode  barter.TxDecoder
	handler barter.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application running handler over store. With
// debug set, error responses include stack traces and panic messages.
func NewBaseApp(store *StoreApp, decode barter.TxDecoder, handler barter.Handler, debug bool) BaseApp {
	return BaseApp{StoreApp: store, decode: decode, handler: handler, debug: debug}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return barter.DeliverTxError(err, b.debug)
	}
	ctx := b.txContext("deliver_tx", tx)
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return barter.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return barter.CheckTxError(err, b.debug)
	}
	ctx := b.txContext("check_tx", tx)
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return barter.CheckOrError(res, err, b.debug)
}

func (b BaseApp) txContext(call string, tx barter.Tx) barter.Context {
	return barter.WithLogInfo(b.BlockContext(), "call", call, "path", barter.GetPath(tx))
}

// decodeTx turns a panicking decoder into an error.
func (b BaseApp) decodeTx(raw []byte) (tx barter.Tx, err error) {
	defer errors.Recover(&err)
	return b.decode(raw)
}
