package errors

import (
	"strings"
)

// Append groups errors that happened together, for example all the
// problems found while validating a message. Nil errors are skipped and
// nested groups are flattened. It returns nil when there is nothing to
// report and a single error unchanged.
func Append(errs ...error) error {
	var group multiErr
	for _, err := range errs {
		switch e := err.(type) {
		case multiErr:
			group = append(group, e...)
		default:
			if !isNilErr(err) {
				group = append(group, err)
			}
		}
	}
	switch len(group) {
	case 0:
		return nil
	case 1:
		return group[0]
	}
	return group
}

// multiErr is a group of errors. The first one decides the ABCI code.
type multiErr []error

type unpacker interface {
	Unpack() []error
}

var _ unpacker = multiErr(nil)

func (m multiErr) Error() string {
	var b strings.Builder
	b.WriteString("multiple errors:")
	for _, e := range m {
		b.WriteString("\n\t* ")
		b.WriteString(e.Error())
	}
	return b.String()
}

func (m multiErr) ABCICode() uint32 {
	if len(m) == 0 {
		return SuccessABCICode
	}
	return abciCode(m[0])
}

func (m multiErr) Unpack() []error {
	return m
}
