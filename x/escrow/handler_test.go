package escrow

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
	"github.com/iov-one/barter/x/cash"
	"github.com/iov-one/barter/x/currency"
)

// fixture is a ledger with three registered assets. The maker holds
// 1000 AAA and 10 CCC, the taker holds 500 BBB.
type fixture struct {
	db     barter.CacheableKVStore
	ledger cash.Controller
	maker  barter.Condition
	taker  barter.Condition
	routes map[string]barter.Handler
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	db := store.MemStore()
	tokens := currency.NewTokenInfoBucket()
	for _, ticker := range []string{"AAA", "BBB", "CCC"} {
		assert.Nil(t, tokens.Save(db, ticker, &currency.TokenInfo{Name: "token " + ticker}))
	}
	ledger := cash.NewController(cash.NewBucket())
	f := &fixture{
		db:     db,
		ledger: ledger,
		maker:  bartertest.NewCondition(),
		taker:  bartertest.NewCondition(),
		routes: make(map[string]barter.Handler),
	}
	assert.Nil(t, ledger.IssueCoins(db, f.maker.Address(), coin.NewCoin(1000, "AAA")))
	assert.Nil(t, ledger.IssueCoins(db, f.maker.Address(), coin.NewCoin(10, "CCC")))
	assert.Nil(t, ledger.IssueCoins(db, f.taker.Address(), coin.NewCoin(500, "BBB")))

	// The authenticator is checked per call through the context.
	RegisterRoutes(f, &bartertest.CtxAuth{Key: "auth"}, ledger)
	return f
}

func (f *fixture) Handle(path string, h barter.Handler) {
	f.routes[path] = h
}

func (f *fixture) deliver(signer barter.Condition, msg barter.Msg) (*barter.DeliverResult, error) {
	auth := &bartertest.CtxAuth{Key: "auth"}
	ctx := auth.SetConditions(context.Background(), signer)
	tx := &bartertest.Tx{Msg: msg}
	cache := f.db.CacheWrap()
	defer cache.Discard()
	if _, err := f.routes[msg.Path()].Check(ctx, cache, tx); err != nil {
		return nil, err
	}
	return f.routes[msg.Path()].Deliver(ctx, f.db, tx)
}

func (f *fixture) open(t testing.TB, seed, deposit, required uint64) (barter.Address, error) {
	t.Helper()
	res, err := f.deliver(f.maker, &OpenMsg{
		Maker:           f.maker.Address(),
		Seed:            seed,
		AssetA:          "AAA",
		AssetB:          "BBB",
		RequiredAmountB: required,
		DepositAmountA:  deposit,
	})
	if err != nil {
		return nil, err
	}
	return barter.Address(res.Data), nil
}

func (f *fixture) fulfillMsg(t testing.TB, escrow barter.Address) *FulfillMsg {
	t.Helper()
	vault, err := DeriveVaultAddress(escrow, "AAA")
	assert.Nil(t, err)
	return &FulfillMsg{
		Taker:  f.taker.Address(),
		Escrow: escrow,
		AssetA: "AAA",
		AssetB: "BBB",
		Vault:  vault,
	}
}

func (f *fixture) balance(t testing.TB, addr barter.Address, ticker string) uint64 {
	t.Helper()
	amount, err := f.ledger.AssetBalance(f.db, addr, ticker)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	assert.Nil(t, err)
	return amount
}

func (f *fixture) supply(t testing.TB, ticker string, addrs ...barter.Address) uint64 {
	t.Helper()
	var total uint64
	for _, a := range addrs {
		total += f.balance(t, a, ticker)
	}
	return total
}

func TestOpenAndFulfill(t *testing.T) {
	f := newFixture(t)

	addr, err := f.open(t, 1, 100, 50)
	assert.Nil(t, err)

	want, _, err := DeriveRecordAddress(f.maker.Address(), 1)
	assert.Nil(t, err)
	assert.Equal(t, want, addr)

	rec, err := NewManager(f.ledger).Load(f.db, addr)
	assert.Nil(t, err)
	vault, err := DeriveVaultAddress(addr, "AAA")
	assert.Nil(t, err)
	assert.Equal(t, vault, rec.VaultA)
	assert.Equal(t, uint64(50), rec.RequiredAmountB)

	w, err := cash.NewBucket().Get(f.db, vault)
	assert.Nil(t, err)
	assert.Equal(t, addr, w.Owner)
	assert.Equal(t, uint64(100), f.balance(t, vault, "AAA"))
	assert.Equal(t, uint64(900), f.balance(t, f.maker.Address(), "AAA"))

	_, err = f.deliver(f.taker, f.fulfillMsg(t, addr))
	assert.Nil(t, err)

	assert.Equal(t, uint64(100), f.balance(t, f.taker.Address(), "AAA"))
	assert.Equal(t, uint64(450), f.balance(t, f.taker.Address(), "BBB"))
	assert.Equal(t, uint64(50), f.balance(t, f.maker.Address(), "BBB"))
	assert.Equal(t, uint64(900), f.balance(t, f.maker.Address(), "AAA"))
	assert.Equal(t, uint64(0), f.balance(t, vault, "AAA"))

	if _, err := NewManager(f.ledger).Load(f.db, addr); !errors.ErrNotFound.Is(err) {
		t.Fatalf("record must be destroyed, got %v", err)
	}
}

func TestOpenFailures(t *testing.T) {
	f := newFixture(t)
	maker := f.maker.Address()
	record, _, err := DeriveRecordAddress(maker, 3)
	assert.Nil(t, err)
	vault, err := DeriveVaultAddress(record, "AAA")
	assert.Nil(t, err)

	cases := map[string]struct {
		signer  barter.Condition
		msg     *OpenMsg
		wantErr *errors.Error
	}{
		"not signed by the maker": {
			signer:  f.taker,
			msg:     &OpenMsg{Maker: maker, Seed: 3, AssetA: "AAA", AssetB: "BBB", RequiredAmountB: 1, DepositAmountA: 1},
			wantErr: errors.ErrUnauthorized,
		},
		"unregistered asset": {
			signer:  f.maker,
			msg:     &OpenMsg{Maker: maker, Seed: 3, AssetA: "AAA", AssetB: "ZZZ", RequiredAmountB: 1, DepositAmountA: 1},
			wantErr: errors.ErrNotFound,
		},
		"same asset": {
			signer:  f.maker,
			msg:     &OpenMsg{Maker: maker, Seed: 3, AssetA: "AAA", AssetB: "AAA", RequiredAmountB: 1, DepositAmountA: 1},
			wantErr: errors.ErrInput,
		},
		"zero required amount": {
			signer:  f.maker,
			msg:     &OpenMsg{Maker: maker, Seed: 3, AssetA: "AAA", AssetB: "BBB", DepositAmountA: 1},
			wantErr: errors.ErrAmount,
		},
		"zero deposit": {
			signer:  f.maker,
			msg:     &OpenMsg{Maker: maker, Seed: 3, AssetA: "AAA", AssetB: "BBB", RequiredAmountB: 1},
			wantErr: errors.ErrAmount,
		},
		"insufficient funds": {
			signer:  f.maker,
			msg:     &OpenMsg{Maker: maker, Seed: 3, AssetA: "AAA", AssetB: "BBB", RequiredAmountB: 1, DepositAmountA: 1001},
			wantErr: errors.ErrInsufficientAmount,
		},
		"asset not held": {
			signer:  f.maker,
			msg:     &OpenMsg{Maker: maker, Seed: 3, AssetA: "BBB", AssetB: "AAA", RequiredAmountB: 1, DepositAmountA: 1},
			wantErr: errors.ErrInsufficientAmount,
		},
		"vault not derived": {
			signer:  f.maker,
			msg:     &OpenMsg{Maker: maker, Seed: 3, AssetA: "AAA", AssetB: "BBB", RequiredAmountB: 1, DepositAmountA: 1, Vault: bartertest.SequenceID(4)},
			wantErr: ErrAssetMismatch,
		},
		"vault of another asset": {
			signer:  f.maker,
			msg:     &OpenMsg{Maker: maker, Seed: 3, AssetA: "CCC", AssetB: "BBB", RequiredAmountB: 1, DepositAmountA: 1, Vault: vault},
			wantErr: ErrAssetMismatch,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if _, err := f.deliver(tc.signer, tc.msg); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if _, err := NewManager(f.ledger).Load(f.db, record); !errors.ErrNotFound.Is(err) {
				t.Fatalf("failed open stored a record: %v", err)
			}
			assert.Equal(t, uint64(1000), f.balance(t, maker, "AAA"))
			assert.Equal(t, uint64(0), f.balance(t, vault, "AAA"))
		})
	}
}

func TestOpenDuplicate(t *testing.T) {
	f := newFixture(t)
	addr, err := f.open(t, 1, 100, 50)
	assert.Nil(t, err)

	if _, err := f.open(t, 1, 10, 5); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %+v", err)
	}

	// The first escrow is left untouched.
	rec, err := NewManager(f.ledger).Load(f.db, addr)
	assert.Nil(t, err)
	assert.Equal(t, uint64(50), rec.RequiredAmountB)
	assert.Equal(t, uint64(100), f.balance(t, rec.VaultA, "AAA"))
	assert.Equal(t, uint64(900), f.balance(t, f.maker.Address(), "AAA"))

	// Another seed opens another escrow.
	other, err := f.open(t, 2, 10, 5)
	assert.Nil(t, err)
	if other.Equals(addr) {
		t.Fatal("escrows with different seeds share an address")
	}
}

func TestFulfillFailures(t *testing.T) {
	cases := map[string]struct {
		prepare func(t testing.TB, f *fixture, msg *FulfillMsg) barter.Condition
		wantErr *errors.Error
	}{
		"not signed by the taker": {
			prepare: func(t testing.TB, f *fixture, msg *FulfillMsg) barter.Condition {
				return f.maker
			},
			wantErr: errors.ErrUnauthorized,
		},
		"unknown escrow": {
			prepare: func(t testing.TB, f *fixture, msg *FulfillMsg) barter.Condition {
				msg.Escrow = bartertest.SequenceID(9)
				return f.taker
			},
			wantErr: errors.ErrNotFound,
		},
		"wrong asset A": {
			prepare: func(t testing.TB, f *fixture, msg *FulfillMsg) barter.Condition {
				msg.AssetA = "CCC"
				return f.taker
			},
			wantErr: ErrAssetMismatch,
		},
		"wrong asset B": {
			prepare: func(t testing.TB, f *fixture, msg *FulfillMsg) barter.Condition {
				msg.AssetB = "CCC"
				return f.taker
			},
			wantErr: ErrAssetMismatch,
		},
		"wrong vault": {
			prepare: func(t testing.TB, f *fixture, msg *FulfillMsg) barter.Condition {
				msg.Vault = f.taker.Address()
				return f.taker
			},
			wantErr: ErrAssetMismatch,
		},
		"taker cannot pay": {
			prepare: func(t testing.TB, f *fixture, msg *FulfillMsg) barter.Condition {
				poor := bartertest.NewCondition()
				assert.Nil(t, f.ledger.IssueCoins(f.db, poor.Address(), coin.NewCoin(49, "BBB")))
				msg.Taker = poor.Address()
				return poor
			},
			wantErr: errors.ErrInsufficientAmount,
		},
		"taker has no wallet": {
			prepare: func(t testing.TB, f *fixture, msg *FulfillMsg) barter.Condition {
				nobody := bartertest.NewCondition()
				msg.Taker = nobody.Address()
				return nobody
			},
			wantErr: errors.ErrInsufficientAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			addr, err := f.open(t, 1, 100, 50)
			assert.Nil(t, err)

			msg := f.fulfillMsg(t, addr)
			signer := tc.prepare(t, f, msg)
			if _, err := f.deliver(signer, msg); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			// Nothing moved and the escrow is still open.
			rec, err := NewManager(f.ledger).Load(f.db, addr)
			assert.Nil(t, err)
			assert.Equal(t, uint64(100), f.balance(t, rec.VaultA, "AAA"))
			assert.Equal(t, uint64(0), f.balance(t, f.maker.Address(), "BBB"))
			assert.Equal(t, uint64(500), f.balance(t, f.taker.Address(), "BBB"))

			// The escrow can still be fulfilled.
			_, err = f.deliver(f.taker, f.fulfillMsg(t, addr))
			assert.Nil(t, err)
		})
	}
}

func TestSingleFulfillment(t *testing.T) {
	f := newFixture(t)
	addr, err := f.open(t, 1, 100, 50)
	assert.Nil(t, err)

	_, err = f.deliver(f.taker, f.fulfillMsg(t, addr))
	assert.Nil(t, err)

	_, err = f.deliver(f.taker, f.fulfillMsg(t, addr))
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("second fulfill: want not found, got %+v", err)
	}
	assert.Equal(t, uint64(450), f.balance(t, f.taker.Address(), "BBB"))
	assert.Equal(t, uint64(100), f.balance(t, f.taker.Address(), "AAA"))
}

func TestConservation(t *testing.T) {
	f := newFixture(t)
	vaults := make([]barter.Address, 0, 3)
	for seed := uint64(1); seed <= 3; seed++ {
		addr, err := f.open(t, seed, 10*seed, 5*seed)
		assert.Nil(t, err)
		vault, err := DeriveVaultAddress(addr, "AAA")
		assert.Nil(t, err)
		vaults = append(vaults, vault)

		if seed != 2 {
			_, err := f.deliver(f.taker, f.fulfillMsg(t, addr))
			assert.Nil(t, err)
		}
	}

	holders := append([]barter.Address{f.maker.Address(), f.taker.Address()}, vaults...)
	assert.Equal(t, uint64(1000), f.supply(t, "AAA", holders...))
	assert.Equal(t, uint64(500), f.supply(t, "BBB", holders...))
	assert.Equal(t, uint64(40), f.balance(t, f.taker.Address(), "AAA"))
	assert.Equal(t, uint64(20), f.balance(t, vaults[1], "AAA"))
}

func TestVaultCannotBeDrained(t *testing.T) {
	f := newFixture(t)
	addr, err := f.open(t, 1, 100, 50)
	assert.Nil(t, err)
	vault, err := DeriveVaultAddress(addr, "AAA")
	assert.Nil(t, err)

	send := cash.NewSendHandler(&bartertest.Auth{Signer: f.maker}, f.ledger)
	tx := &bartertest.Tx{Msg: &cash.SendMsg{
		Source:      vault,
		Destination: f.maker.Address(),
		Amount:      coin.NewCoinp(100, "AAA"),
	}}
	if _, err := send.Deliver(context.Background(), f.db, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}

	// A forged authority with another seed is rejected by the ledger.
	forged := Authority{Maker: f.maker.Address(), Seed: 2}
	err = f.ledger.Transfer(context.Background(), f.db, forged, vault, f.maker.Address(), coin.NewCoin(1, "AAA"))
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}
	assert.Equal(t, uint64(100), f.balance(t, vault, "AAA"))
}

func TestOpenRejectsForeignVault(t *testing.T) {
	f := newFixture(t)
	record, _, err := DeriveRecordAddress(f.maker.Address(), 1)
	assert.Nil(t, err)
	vault, err := DeriveVaultAddress(record, "AAA")
	assert.Nil(t, err)
	assert.Nil(t, f.ledger.Allocate(f.db, vault, bartertest.SequenceID(66)))

	if _, err := f.open(t, 1, 100, 50); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}
	assert.Equal(t, uint64(1000), f.balance(t, f.maker.Address(), "AAA"))
}

func TestFulfillReleasesLiveBalance(t *testing.T) {
	f := newFixture(t)
	addr, err := f.open(t, 1, 100, 50)
	assert.Nil(t, err)
	vault, err := DeriveVaultAddress(addr, "AAA")
	assert.Nil(t, err)

	// Anyone can top up the vault. The taker receives it all.
	assert.Nil(t, f.ledger.Transfer(context.Background(), f.db, cash.NewSignerAuthority(&bartertest.Auth{Signer: f.maker}),
		f.maker.Address(), vault, coin.NewCoin(5, "AAA")))

	_, err = f.deliver(f.taker, f.fulfillMsg(t, addr))
	assert.Nil(t, err)
	assert.Equal(t, uint64(105), f.balance(t, f.taker.Address(), "AAA"))
}

func TestFulfillReleasesOtherAssets(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, SaveConfiguration(f.db, &Configuration{CloseEmptyVault: true}))
	addr, err := f.open(t, 1, 100, 50)
	assert.Nil(t, err)
	vault, err := DeriveVaultAddress(addr, "AAA")
	assert.Nil(t, err)

	makerAuth := cash.NewSignerAuthority(&bartertest.Auth{Signer: f.maker})
	assert.Nil(t, f.ledger.Transfer(context.Background(), f.db, makerAuth,
		f.maker.Address(), vault, coin.NewCoin(4, "CCC")))

	_, err = f.deliver(f.taker, f.fulfillMsg(t, addr))
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), f.balance(t, f.taker.Address(), "AAA"))
	assert.Equal(t, uint64(4), f.balance(t, f.taker.Address(), "CCC"))
	if _, err := cash.NewBucket().Get(f.db, vault); !errors.ErrNotFound.Is(err) {
		t.Fatalf("vault must be closed, got %v", err)
	}
}

func TestFulfillRollbackAfterPayment(t *testing.T) {
	f := newFixture(t)
	addr, err := f.open(t, 1, 100, 50)
	assert.Nil(t, err)

	// The payment succeeds but crediting asset A to the taker overflows.
	assert.Nil(t, f.ledger.IssueCoins(f.db, f.taker.Address(), coin.NewCoin(math.MaxUint64, "AAA")))

	if _, err := f.deliver(f.taker, f.fulfillMsg(t, addr)); !errors.ErrOverflow.Is(err) {
		t.Fatalf("want overflow, got %+v", err)
	}
	assert.Equal(t, uint64(0), f.balance(t, f.maker.Address(), "BBB"))
	assert.Equal(t, uint64(500), f.balance(t, f.taker.Address(), "BBB"))
	assert.Equal(t, uint64(math.MaxUint64), f.balance(t, f.taker.Address(), "AAA"))

	rec, err := NewManager(f.ledger).Load(f.db, addr)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), f.balance(t, rec.VaultA, "AAA"))
}

func TestStorageDeposit(t *testing.T) {
	cases := map[string]struct {
		conf        Configuration
		refundTaker bool
		closeVault  bool
	}{
		"refund to maker": {
			conf: Configuration{StorageDeposit: coin.NewCoinp(3, "CCC"), RefundTarget: RefundToMaker},
		},
		"refund to taker": {
			conf:        Configuration{StorageDeposit: coin.NewCoinp(3, "CCC"), RefundTarget: RefundToTaker},
			refundTaker: true,
		},
		"close empty vault": {
			conf:       Configuration{StorageDeposit: coin.NewCoinp(3, "CCC"), CloseEmptyVault: true},
			closeVault: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			assert.Nil(t, SaveConfiguration(f.db, &tc.conf))

			addr, err := f.open(t, 1, 100, 50)
			assert.Nil(t, err)
			assert.Equal(t, uint64(3), f.balance(t, addr, "CCC"))
			assert.Equal(t, uint64(7), f.balance(t, f.maker.Address(), "CCC"))

			_, err = f.deliver(f.taker, f.fulfillMsg(t, addr))
			assert.Nil(t, err)

			assert.Equal(t, uint64(0), f.balance(t, addr, "CCC"))
			if tc.refundTaker {
				assert.Equal(t, uint64(3), f.balance(t, f.taker.Address(), "CCC"))
				assert.Equal(t, uint64(7), f.balance(t, f.maker.Address(), "CCC"))
			} else {
				assert.Equal(t, uint64(10), f.balance(t, f.maker.Address(), "CCC"))
			}

			vault, err := DeriveVaultAddress(addr, "AAA")
			assert.Nil(t, err)
			_, err = cash.NewBucket().Get(f.db, vault)
			if tc.closeVault {
				if !errors.ErrNotFound.Is(err) {
					t.Fatalf("vault must be closed, got %v", err)
				}
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestStorageDepositInsufficient(t *testing.T) {
	f := newFixture(t)
	assert.Nil(t, SaveConfiguration(f.db, &Configuration{StorageDeposit: coin.NewCoinp(11, "CCC")}))

	if _, err := f.open(t, 1, 100, 50); !errors.ErrInsufficientAmount.Is(err) {
		t.Fatalf("want insufficient amount, got %+v", err)
	}
	// The asset A deposit was rolled back together with the failed fee.
	assert.Equal(t, uint64(1000), f.balance(t, f.maker.Address(), "AAA"))
	assert.Equal(t, uint64(10), f.balance(t, f.maker.Address(), "CCC"))
}
