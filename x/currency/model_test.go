package currency

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
)

func TestTokenInfoBucket(t *testing.T) {
	bucket := NewTokenInfoBucket()
	db := store.MemStore()

	// Registration of invalid token must fail.
	if err := bucket.Save(db, "this is not a valid name", &TokenInfo{Name: "Invalid Token"}); !errors.ErrCurrency.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := bucket.Save(db, "BAD", &TokenInfo{Name: "x"}); !errors.ErrModel.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	doge := &TokenInfo{Name: "Doge Coin", Decimals: 4}
	assert.Nil(t, bucket.Save(db, "DOGE", doge))
	plop := &TokenInfo{Name: "Plop Coin", Decimals: 7}
	assert.Nil(t, bucket.Save(db, "PLP", plop))

	if err := bucket.Save(db, "DOGE", plop); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	if _, err := bucket.Get(db, "XYZ"); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	got, err := bucket.Get(db, "DOGE")
	assert.Nil(t, err)
	assert.Equal(t, doge, got)

	qr := barter.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/tokens").Query(db, barter.PrefixQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
}
