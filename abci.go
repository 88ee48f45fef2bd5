package barter

import (
	"github.com/iov-one/barter/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successful Deliver. Failures are
// reported as errors only.
type DeliverResult struct {
	// Data is returned to the client, for example the address of a new
	// escrow.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and can be used to search the
	// transaction history.
	Tags    []common.KVPair
	GasUsed int64
}

// ToABCI converts the result into a tendermint response.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// CheckResult is the outcome of a successful Check.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the most work the transaction may use when
	// delivered.
	GasAllocated int64
}

// ToABCI converts the result into a tendermint response.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverOrError returns the error response if err is set, otherwise the
// response for the result.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError returns the error response if err is set, otherwise the
// response for the result.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

// DeliverTxError reports err to tendermint. Outside of debug mode panics
// and errors without a code are redacted.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errorInfo("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError reports err to tendermint. Outside of debug mode panics and
// errors without a code are redacted.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errorInfo("cannot check tx", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func errorInfo(prefix string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(errors.Redact(err, debug), debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, prefix + ": " + log
}
