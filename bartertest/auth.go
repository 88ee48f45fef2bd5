package bartertest

import (
	"context"

	"github.com/iov-one/barter"
)

// Auth authenticates a fixed set of conditions, Signer plus Signers,
// regardless of the context.
type Auth struct {
	Signer  barter.Condition
	Signers []barter.Condition
}

func (a *Auth) GetConditions(barter.Context) []barter.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]barter.Condition, 0, len(a.Signers)+1)
	return append(append(conds, a.Signers...), a.Signer)
}

func (a *Auth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context in which the given conditions are
// authenticated.
func (a *CtxAuth) SetConditions(ctx barter.Context, conds ...barter.Condition) barter.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx barter.Context) []barter.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]barter.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx barter.Context, addr barter.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []barter.Condition, addr barter.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
