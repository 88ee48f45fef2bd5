package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
)

const (
	pathOpenMsg    = "escrow/open"
	pathFulfillMsg = "escrow/fulfill"
)

var _ barter.Msg = (*OpenMsg)(nil)

// Path returns the routing path for this message
func (OpenMsg) Path() string {
	return pathOpenMsg
}

// Validate makes sure that this is sensible
func (m *OpenMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Maker", m.Maker.Validate())
	err = errors.AppendField(err, "AssetA", validateTicker(m.AssetA))
	err = errors.AppendField(err, "AssetB", validateTicker(m.AssetB))
	if m.AssetA == m.AssetB {
		err = errors.Append(err, errors.Field("AssetB", errors.ErrInput, "cannot swap an asset for itself"))
	}
	if m.RequiredAmountB == 0 {
		err = errors.Append(err, errors.Field("RequiredAmountB", errors.ErrAmount, "must be positive"))
	}
	if m.DepositAmountA == 0 {
		err = errors.Append(err, errors.Field("DepositAmountA", errors.ErrAmount, "must be positive"))
	}
	if len(m.Vault) != 0 {
		err = errors.AppendField(err, "Vault", m.Vault.Validate())
	}
	return err
}

var _ barter.Msg = (*FulfillMsg)(nil)

// Path returns the routing path for this message
func (FulfillMsg) Path() string {
	return pathFulfillMsg
}

// Validate makes sure that this is sensible
func (m *FulfillMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Taker", m.Taker.Validate())
	err = errors.AppendField(err, "Escrow", m.Escrow.Validate())
	err = errors.AppendField(err, "AssetA", validateTicker(m.AssetA))
	err = errors.AppendField(err, "AssetB", validateTicker(m.AssetB))
	err = errors.AppendField(err, "Vault", m.Vault.Validate())
	return err
}

func validateTicker(ticker string) error {
	if !coin.IsCC(ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
	}
	return nil
}
