package bartertest

import "github.com/iov-one/barter"

// Decorator counts calls and passes them on to the next handler unless
// CheckErr or DeliverErr is set, in which case that error is returned
// instead.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ barter.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate wraps h with d.
func Decorate(h barter.Handler, d barter.Decorator) barter.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   barter.Handler
	decorator barter.Decorator
}

func (d decorated) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
