package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Codes below 1000 belong to this
// package.
var (
	ErrUnauthorized       = Register(2, "unauthorized")
	ErrNotFound           = Register(3, "not found")
	ErrMsg                = Register(4, "invalid message")
	ErrModel              = Register(5, "invalid model")
	ErrDuplicate          = Register(6, "duplicate")
	ErrHuman              = Register(7, "coding error")
	ErrImmutable          = Register(8, "cannot be modified")
	ErrEmpty              = Register(9, "value is empty")
	ErrState              = Register(10, "invalid state")
	ErrType               = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrOverflow           = Register(16, "value overflow")
	ErrCurrency           = Register(17, "currency")
	ErrDatabase           = Register(18, "database")
	ErrIteratorDone       = Register(19, "iterator done")

	// ErrPanic is only produced by Recover. Its message is never exposed
	// outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every code in use. Code 1 is reserved for errors that do
// not carry a code.
var registry = map[uint32]*Error{internalABCICode: nil}

// Register declares a new root error. It panics if the code is taken, so
// call it only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		if prev == nil {
			panic(fmt.Sprintf("error code %d is reserved", code))
		}
		panic(fmt.Sprintf("error code %d is already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Runtime errors wrap one of the registered
// instances so that their kind and ABCI code survive any amount of context
// added on the way up.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

// ABCICode is the code reported to tendermint clients.
func (e Error) ABCICode() uint32 { return e.code }

// Is reports whether err is of this kind. The wrap chain and every member
// of an Append group are inspected. A nil kind matches only a nil error.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return isNilErr(err)
	}
	return visit(err, func(e error) bool { return e == kind })
}

// Wrap adds a description to err. The first wrap in a chain records the
// stack trace. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover stops a panic and stores it in *err as ErrPanic. It must be
// called directly by defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

// visit calls fn for err and everything it wraps until fn returns true.
func visit(err error, fn func(error) bool) bool {
	for err != nil {
		if fn(err) {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				if visit(e, fn) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	var st errors.StackTrace
	visit(err, func(e error) bool {
		if t, ok := e.(stackTracer); ok {
			st = t.StackTrace()
			return true
		}
		return false
	})
	return st
}

// isNilErr is true for nil and for a typed nil pointer stored in an error
// interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return v.IsNil()
	}
	return false
}
