package barter

import (
	"reflect"

	"github.com/iov-one/barter/errors"
)

// Marshaller serializes to the binary wire format.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a Marshaller that can also be decoded. Unmarshal needs a
// pointer receiver, so values that are only written implement Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is the action requested by a transaction, such as opening an
// escrow. Authentication lives in the Tx around it.
type Msg interface {
	Persistent

	// Path selects the handler, for example "escrow/open". It matches
	// [a-zA-Z0-9_/]+.
	Path() string

	// Validate checks everything that can be checked without reading
	// the state.
	Validate() error
}

// Tx is what a client submits: one message plus whatever the decorators
// need, such as signatures.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath is the message path of tx, "(missing)" when it has none. It is
// meant for logging.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dst, which must point to a value
// of the same message type, and validates it.
func LoadMsg(tx Tx, dst interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrState, "transaction without message")
	}

	out := reflect.ValueOf(dst)
	if out.Kind() != reflect.Ptr || out.IsNil() {
		return errors.Wrapf(errors.ErrType, "cannot load message into %T", dst)
	}
	in := reflect.ValueOf(msg)
	if in.Type() != out.Type() {
		return errors.Wrapf(errors.ErrType, "message is %T, not %T", msg, dst)
	}
	out.Elem().Set(in.Elem())

	return errors.Wrap(msg.Validate(), "invalid message")
}

// ExtractMsgFromFields returns the single message of a transaction that
// keeps one pointer field per message type. Exactly one of them may be
// set. Fields that are nil pointers or not pointers at all are skipped.
func ExtractMsgFromFields(container interface{}) (Msg, error) {
	v := reflect.ValueOf(container)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "%T is not a pointer to a struct", container)
	}
	v = v.Elem()

	var msg Msg
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}
		m, ok := f.Interface().(Msg)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "field %s holds no message", v.Type().Field(i).Name)
		}
		if msg != nil {
			return nil, errors.Wrap(errors.ErrState, "several messages set")
		}
		msg = m
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrState, "no message set")
	}
	return msg, nil
}
