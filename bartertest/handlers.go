package bartertest

import "github.com/iov-one/barter"

// Handler counts calls and returns a copy of the configured result, or the
// configured error if one is set.
type Handler struct {
	calls
	CheckResult   barter.CheckResult
	CheckErr      error
	DeliverResult barter.DeliverResult
	DeliverErr    error
}

var _ barter.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler stores Value under Key and then fails with Err, if set. A
// test can check whether the write survived the failure.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ barter.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) write(db barter.KVStore) error {
	if err := db.Set(h.Key, h.Value); err != nil {
		return err
	}
	return h.Err
}

func (h *WriteHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &barter.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &barter.DeliverResult{}, nil
}
