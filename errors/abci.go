package errors

import (
	"fmt"
)

const (
	// SuccessABCICode is reported for a nil error.
	SuccessABCICode = 0

	// Errors that carry no code are reported as internal. Their message
	// is hidden unless running in debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log for an ABCI response. The log of an
// internal error is replaced with a generic message unless debug is set.
// In debug mode the log includes the stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// abciCode returns the code of the outermost error in the chain that has
// one, or the internal code.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	type coder interface {
		ABCICode() uint32
	}
	code := internalABCICode
	visit(err, func(e error) bool {
		if c, ok := e.(coder); ok {
			code = c.ABCICode()
			return true
		}
		return false
	})
	return code
}

// Redact hides errors that carry no code and all panics behind a generic
// internal error. Debug mode returns err unchanged.
func Redact(err error, debug bool) error {
	if debug || isNilErr(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errInternal
	}
	return err
}

// errInternal carries no code, so it is reported as internal.
var errInternal error = internalError{}

type internalError struct{}

func (internalError) Error() string { return internalABCILog }
