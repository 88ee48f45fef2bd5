package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/currency"
)

// Authority proves the right to move funds out of a wallet. It is asked
// about the owner of the wallet, which for custody accounts differs from the
// wallet address.
type Authority interface {
	Authorizes(ctx barter.Context, owner barter.Address) bool
}

// SignerAuthority authorizes the addresses of the signers of the current
// transaction.
type SignerAuthority struct {
	auth x.Authenticator
}

var _ Authority = SignerAuthority{}

// NewSignerAuthority returns an Authority backed by the given authenticator.
func NewSignerAuthority(auth x.Authenticator) SignerAuthority {
	return SignerAuthority{auth: auth}
}

func (a SignerAuthority) Authorizes(ctx barter.Context, owner barter.Address) bool {
	return a.auth.HasAddress(ctx, owner)
}

// Controller is the asset ledger. Other extensions must move funds only
// through it.
type Controller interface {
	// Balance returns all coins held by the address.
	Balance(db barter.ReadOnlyKVStore, addr barter.Address) (coin.Coins, error)

	// AssetBalance returns the amount of one asset held by the address.
	AssetBalance(db barter.ReadOnlyKVStore, addr barter.Address, ticker string) (uint64, error)

	// Allocate creates an empty custody account controlled by the owner.
	// Allocating an account that already has the same owner is a noop.
	Allocate(db barter.KVStore, addr, owner barter.Address) error

	// Transfer moves coins from src to dst if the authority authorizes
	// the owner of src. The destination wallet is created if missing.
	Transfer(ctx barter.Context, db barter.KVStore, auth Authority, src, dst barter.Address, amount coin.Coin) error

	// MoveCoins moves coins without any authorization check.
	MoveCoins(db barter.KVStore, src, dst barter.Address, amount coin.Coin) error

	// IssueCoins creates coins out of thin air.
	IssueCoins(db barter.KVStore, dst barter.Address, amount coin.Coin) error

	// Close deletes an empty wallet.
	Close(db barter.KVStore, addr barter.Address) error

	// Mint returns the registration of the asset.
	Mint(db barter.ReadOnlyKVStore, ticker string) (*currency.TokenInfo, error)
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket Bucket
	tokens *currency.TokenInfoBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the given wallet bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{
		bucket: bucket,
		tokens: currency.NewTokenInfoBucket(),
	}
}

func (c BaseController) Balance(db barter.ReadOnlyKVStore, addr barter.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Balance(), nil
}

func (c BaseController) AssetBalance(db barter.ReadOnlyKVStore, addr barter.Address, ticker string) (uint64, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance().AmountOf(ticker), nil
}

// Allocate creates a custody account. An existing wallet without an owner,
// for example one that received a transfer before being allocated, is
// adopted together with its funds.
func (c BaseController) Allocate(db barter.KVStore, addr, owner barter.Address) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return err
	}
	switch {
	case !w.IsCustody():
		w.Owner = owner
	case w.Owner.Equals(owner):
		return nil
	default:
		return errors.Wrapf(errors.ErrUnauthorized, "account %s is owned by %s", addr, w.Owner)
	}
	return c.bucket.Save(db, addr, w)
}

func (c BaseController) Transfer(ctx barter.Context, db barter.KVStore, auth Authority, src, dst barter.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}
	w, err := c.bucket.Get(db, src)
	switch {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrInsufficientAmount, "empty account %s", src)
	case err != nil:
		return err
	}
	if auth == nil || !auth.Authorizes(ctx, w.OwnerOf(src)) {
		return errors.Wrapf(errors.ErrUnauthorized, "cannot move funds of %s", src)
	}
	return c.MoveCoins(db, src, dst, amount)
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db barter.KVStore, src, dst barter.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	sender, err := c.bucket.Get(db, src)
	switch {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrInsufficientAmount, "empty account %s", src)
	case err != nil:
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if src.Equals(dst) {
		// Funds would end up where they came from.
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dst)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	// Plain wallets are removed once empty, custody accounts are
	// removed by Close.
	if !sender.IsCustody() && sender.Balance().IsEmpty() {
		err = c.bucket.Delete(db, src)
	} else {
		err = c.bucket.Save(db, src, sender)
	}
	if err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := c.bucket.Save(db, dst, recipient); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db barter.KVStore, dst barter.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, err := c.bucket.GetOrCreate(db, dst)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dst, recipient)
}

func (c BaseController) Close(db barter.KVStore, addr barter.Address) error {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return err
	}
	if !w.Balance().IsEmpty() {
		return errors.Wrapf(errors.ErrState, "account %s is not empty", addr)
	}
	return c.bucket.Delete(db, addr)
}

func (c BaseController) Mint(db barter.ReadOnlyKVStore, ticker string) (*currency.TokenInfo, error) {
	return c.tokens.Get(db, ticker)
}
