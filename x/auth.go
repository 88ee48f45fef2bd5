package x

import (
	"github.com/iov-one/barter"
)

// Authenticator tells which conditions signed the current transaction.
// Handlers receive one in their constructor.
type Authenticator interface {
	// GetConditions returns every condition authenticated in ctx.
	GetConditions(barter.Context) []barter.Condition
	// HasAddress is true if one of those conditions has this address.
	HasAddress(barter.Context, barter.Address) bool
}

// ChainAuth merges several authenticators. A condition is authenticated if
// any of them authenticates it.
func ChainAuth(impls ...Authenticator) Authenticator {
	return multiAuth(impls)
}

type multiAuth []Authenticator

func (m multiAuth) GetConditions(ctx barter.Context) []barter.Condition {
	var conds []barter.Condition
	for _, a := range m {
		conds = append(conds, a.GetConditions(ctx)...)
	}
	return conds
}

func (m multiAuth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first authenticated condition or nil.
func MainSigner(ctx barter.Context, auth Authenticator) barter.Condition {
	if conds := auth.GetConditions(ctx); len(conds) != 0 {
		return conds[0]
	}
	return nil
}
