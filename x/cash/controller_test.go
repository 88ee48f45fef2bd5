package cash

import (
	"context"
	"math"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/iov-one/barter/x/currency"
)

// addressAuthority authorizes a fixed set of owners.
type addressAuthority []barter.Address

func (a addressAuthority) Authorizes(ctx barter.Context, owner barter.Address) bool {
	for _, addr := range a {
		if addr.Equals(owner) {
			return true
		}
	}
	return false
}

func TestControllerTransfer(t *testing.T) {
	alice := bartertest.SequenceID(1)
	bob := bartertest.SequenceID(2)
	vault := bartertest.SequenceID(3)
	escrow := bartertest.SequenceID(4)

	cases := map[string]struct {
		src     barter.Address
		dst     barter.Address
		auth    Authority
		amount  coin.Coin
		wantErr *errors.Error
		// balances expected after the call, by address
		want map[string]uint64
	}{
		"owner moves own funds": {
			src:    alice,
			dst:    bob,
			auth:   addressAuthority{alice},
			amount: coin.NewCoin(30, "AAA"),
			want:   map[string]uint64{alice.String(): 70, bob.String(): 30},
		},
		"all funds": {
			src:    alice,
			dst:    bob,
			auth:   addressAuthority{alice},
			amount: coin.NewCoin(100, "AAA"),
			want:   map[string]uint64{alice.String(): 0, bob.String(): 100},
		},
		"not authorized": {
			src:     alice,
			dst:     bob,
			auth:    addressAuthority{bob},
			amount:  coin.NewCoin(30, "AAA"),
			wantErr: errors.ErrUnauthorized,
			want:    map[string]uint64{alice.String(): 100},
		},
		"nil authority": {
			src:     alice,
			dst:     bob,
			amount:  coin.NewCoin(30, "AAA"),
			wantErr: errors.ErrUnauthorized,
			want:    map[string]uint64{alice.String(): 100},
		},
		"insufficient funds": {
			src:     alice,
			dst:     bob,
			auth:    addressAuthority{alice},
			amount:  coin.NewCoin(101, "AAA"),
			wantErr: errors.ErrInsufficientAmount,
			want:    map[string]uint64{alice.String(): 100},
		},
		"empty source": {
			src:     bob,
			dst:     alice,
			auth:    addressAuthority{bob},
			amount:  coin.NewCoin(1, "AAA"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"zero amount": {
			src:     alice,
			dst:     bob,
			auth:    addressAuthority{alice},
			amount:  coin.NewCoin(0, "AAA"),
			wantErr: errors.ErrAmount,
		},
		"custody account requires owner authority": {
			src:    vault,
			dst:    bob,
			auth:   addressAuthority{escrow},
			amount: coin.NewCoin(5, "BBB"),
			want:   map[string]uint64{vault.String(): 45, bob.String(): 5},
		},
		"custody account ignores its own address": {
			src:     vault,
			dst:     bob,
			auth:    addressAuthority{vault},
			amount:  coin.NewCoin(5, "BBB"),
			wantErr: errors.ErrUnauthorized,
			want:    map[string]uint64{vault.String(): 50},
		},
		"to self": {
			src:    alice,
			dst:    alice,
			auth:   addressAuthority{alice},
			amount: coin.NewCoin(10, "AAA"),
			want:   map[string]uint64{alice.String(): 100},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(100, "AAA")))
			assert.Nil(t, ctrl.Allocate(db, vault, escrow))
			assert.Nil(t, ctrl.IssueCoins(db, vault, coin.NewCoin(50, "BBB")))

			err := ctrl.Transfer(context.Background(), db, tc.auth, tc.src, tc.dst, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			for _, addr := range []barter.Address{alice, bob, vault} {
				want, ok := tc.want[addr.String()]
				if !ok {
					continue
				}
				ticker := "AAA"
				if addr.Equals(vault) || tc.amount.Ticker == "BBB" {
					ticker = "BBB"
				}
				got, err := ctrl.AssetBalance(db, addr, ticker)
				if err != nil && !errors.ErrNotFound.Is(err) {
					t.Fatalf("cannot get balance: %s", err)
				}
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestControllerAllocate(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	vault := bartertest.SequenceID(1)
	owner := bartertest.SequenceID(2)
	other := bartertest.SequenceID(3)

	assert.Nil(t, ctrl.Allocate(db, vault, owner))
	// Idempotent for the same owner.
	assert.Nil(t, ctrl.Allocate(db, vault, owner))

	if err := ctrl.Allocate(db, vault, other); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := ctrl.Allocate(db, vault, nil); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	// A wallet funded before allocation is adopted with its funds.
	prefunded := bartertest.SequenceID(4)
	assert.Nil(t, ctrl.IssueCoins(db, prefunded, coin.NewCoin(7, "AAA")))
	assert.Nil(t, ctrl.Allocate(db, prefunded, owner))
	w, err := NewBucket().Get(db, prefunded)
	assert.Nil(t, err)
	assert.Equal(t, owner, w.Owner)
	assert.Equal(t, uint64(7), w.Balance().AmountOf("AAA"))
}

func TestControllerClose(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	addr := bartertest.SequenceID(1)

	if err := ctrl.Close(db, addr); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	assert.Nil(t, ctrl.Allocate(db, addr, bartertest.SequenceID(3)))
	assert.Nil(t, ctrl.IssueCoins(db, addr, coin.NewCoin(1, "AAA")))
	if err := ctrl.Close(db, addr); !errors.ErrState.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	assert.Nil(t, ctrl.MoveCoins(db, addr, bartertest.SequenceID(2), coin.NewCoin(1, "AAA")))
	// An empty custody account is kept until closed.
	balance, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, true, balance.IsEmpty())
	assert.Nil(t, ctrl.Close(db, addr))
	if _, err := ctrl.Balance(db, addr); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestControllerIssueOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	addr := bartertest.SequenceID(1)

	assert.Nil(t, ctrl.IssueCoins(db, addr, coin.NewCoin(math.MaxUint64, "AAA")))
	if err := ctrl.IssueCoins(db, addr, coin.NewCoin(1, "AAA")); !errors.ErrOverflow.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	other := bartertest.SequenceID(2)
	assert.Nil(t, ctrl.IssueCoins(db, other, coin.NewCoin(1, "AAA")))
	if err := ctrl.MoveCoins(db, other, addr, coin.NewCoin(1, "AAA")); !errors.ErrOverflow.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	// A failed move must leave the sender untouched.
	got, err := ctrl.AssetBalance(db, other, "AAA")
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), got)
}

func TestControllerMint(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	if _, err := ctrl.Mint(db, "AAA"); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	assert.Nil(t, currency.NewTokenInfoBucket().Save(db, "AAA", &currency.TokenInfo{Name: "Asset A"}))
	info, err := ctrl.Mint(db, "AAA")
	assert.Nil(t, err)
	assert.Equal(t, "Asset A", info.Name)
}

func TestControllerPrunesEmptyWallet(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	addr := bartertest.SequenceID(1)

	assert.Nil(t, ctrl.IssueCoins(db, addr, coin.NewCoin(3, "AAA")))
	assert.Nil(t, ctrl.MoveCoins(db, addr, bartertest.SequenceID(2), coin.NewCoin(3, "AAA")))
	if _, err := ctrl.Balance(db, addr); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestSignerAuthority(t *testing.T) {
	signer := bartertest.NewCondition()
	auth := NewSignerAuthority(&bartertest.Auth{Signer: signer})
	ctx := context.Background()

	assert.Equal(t, true, auth.Authorizes(ctx, signer.Address()))
	assert.Equal(t, false, auth.Authorizes(ctx, bartertest.SequenceID(1)))
}
