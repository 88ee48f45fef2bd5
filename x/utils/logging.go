package utils

import (
	"time"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Logging writes one line per transaction with its path, its duration in
// microseconds and either the result log or the error. Successful checks
// log at debug level, successful delivers at info level and failures at
// error level.
type Logging struct{}

var _ barter.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logResult(ctx, tx, time.Since(start), msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logResult(ctx, tx, time.Since(start), msg, err, false)
	return res, err
}

func logResult(ctx barter.Context, tx barter.Tx, took time.Duration, msg string, err error, check bool) {
	logger := barter.GetLogger(ctx).With(
		"path", barter.GetPath(tx),
		"duration", took/time.Microsecond,
	)
	switch {
	case err != nil:
		code, _ := errors.ABCIInfo(err, true)
		logger.Error(msg, "err", err, "code", code)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
