package barter

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/barter/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block information and the logger through every
// Check and Deliver call.
type Context = context.Context

type ctxKey int

const (
	heightKey ctxKey = iota
	blockTimeKey
	chainIDKey
	loggerKey
)

// DefaultLogger is returned by GetLogger when the context has none.
var DefaultLogger = log.NewNopLogger()

// IsValidChainID accepts 6 to 20 characters out of letters, digits, dash
// and underscore.
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// WithHeight sets the block height. A context holds one height for its
// whole life, so setting it twice panics.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("block height is already set")
	}
	return context.WithValue(ctx, heightKey, height)
}

// GetHeight returns the block height and false if none is set.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, blockTimeKey, t)
}

// BlockTime fails with ErrHuman when the block time was never set.
func BlockTime(ctx Context) (time.Time, error) {
	if t, ok := ctx.Value(blockTimeKey).(time.Time); ok {
		return t, nil
	}
	return time.Time{}, errors.Wrap(errors.ErrHuman, "no block time in context")
}

// WithChainID panics on an invalid id or when one is already set.
func WithChainID(ctx Context, chainID string) Context {
	if _, ok := ctx.Value(chainIDKey).(string); ok {
		panic("chain id is already set")
	}
	if !IsValidChainID(chainID) {
		panic("invalid chain id: " + chainID)
	}
	return context.WithValue(ctx, chainIDKey, chainID)
}

// GetChainID panics when no chain id is set. Every context built by the
// application has one.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("chain id is not set")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo attaches key value pairs to every later log line.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
