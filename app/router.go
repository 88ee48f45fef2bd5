package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path
// of its message.
type Router struct {
	routes map[string]barter.Handler
}

var (
	_ barter.Registry = (*Router)(nil)
	_ barter.Handler  = (*Router)(nil)
)

func NewRouter() *Router {
	return &Router{routes: map[string]barter.Handler{}}
}

// Handle registers h for path. Routes are wired at start up, so a
// malformed or duplicate path panics.
func (r *Router) Handle(path string, h barter.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("malformed route %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("route %q registered twice", path))
	}
	r.routes[path] = h
}

func (r *Router) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

// route fails with ErrNotFound for a path nobody registered.
func (r *Router) route(tx barter.Tx) (barter.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no route for %q", msg.Path())
	}
	return h, nil
}
