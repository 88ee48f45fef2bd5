package sigs

import (
	"context"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/x"
)

type signersKey struct{}

// withSigners records the verified signers. Only the Decorator calls it.
func withSigners(ctx barter.Context, signers []barter.Condition) barter.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate reports the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx barter.Context) []barter.Condition {
	signers, _ := ctx.Value(signersKey{}).([]barter.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
