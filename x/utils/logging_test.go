package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := barter.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "escrow/fulfill"}}

	ok := bartertest.Decorate(&bartertest.Handler{
		DeliverResult: barter.DeliverResult{Log: "settled"},
	}, NewLogging())
	_, err := ok.Deliver(ctx, db, tx)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "settled")
	assert.Contains(t, buf.String(), "path=escrow/fulfill")

	buf.Reset()
	failing := bartertest.Decorate(&bartertest.Handler{
		DeliverErr: errors.ErrNotFound,
	}, NewLogging())
	_, err = failing.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Contains(t, buf.String(), "code=3")
}
