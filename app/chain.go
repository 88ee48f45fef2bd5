package app

import (
	"reflect"

	"github.com/iov-one/barter"
)

// Decorators is a stack of middleware waiting for its final Handler.
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
//
// The first decorator is the outermost one.
type Decorators struct {
	stack []barter.Decorator
}

// ChainDecorators starts a stack. Nil decorators are skipped, so optional
// middleware can be passed unconditionally.
func ChainDecorators(ds ...barter.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a new stack with ds added below the existing decorators.
func (d Decorators) Chain(ds ...barter.Decorator) Decorators {
	stack := make([]barter.Decorator, len(d.stack), len(d.stack)+len(ds))
	copy(stack, d.stack)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			stack = append(stack, dec)
		}
	}
	return Decorators{stack: stack}
}

func isNilDecorator(d barter.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h barter.Handler) barter.Handler {
	for i := len(d.stack) - 1; i >= 0; i-- {
		h = decorated{decorator: d.stack[i], next: h}
	}
	return h
}

// decorated runs one decorator around the rest of the stack.
type decorated struct {
	decorator barter.Decorator
	next      barter.Handler
}

var _ barter.Handler = decorated{}

func (d decorated) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.next)
}
