package bartertest

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Tx carries a single message. GetMsg returns Err if it is set.
type Tx struct {
	Msg barter.Msg
	Err error
}

var _ barter.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (barter.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal and Unmarshal are not supported. Tests that need a wire format
// use a real transaction type.
func (tx *Tx) Marshal() ([]byte, error) {
	return nil, errors.Wrap(errors.ErrHuman, "mock transaction cannot be serialized")
}

func (tx *Tx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "mock transaction cannot be deserialized")
}

// Msg routes to RoutePath. Serialized is its wire form and Err, if set, is
// returned by every method.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ barter.Msg = (*Msg)(nil)

func (m *Msg) Path() string    { return m.RoutePath }
func (m *Msg) Validate() error { return m.Err }

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
