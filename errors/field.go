package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attributes err to a named field, for example "Maker" or
// "Amount.Ticker". Nested fields use dot notation and list elements use
// their index. A nil err returns nil.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: name, desc: description}
}

// AppendField adds the field error, if any, to the group.
func AppendField(group error, name string, err error) error {
	return Append(group, Field(name, err, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

// FieldErrors returns all errors in err that were created for the named
// field.
func FieldErrors(err error, name string) []error {
	var found []error
	var collect func(error)
	collect = func(err error) {
		for err != nil {
			if f, ok := err.(*fieldError); ok && f.field == name {
				found = append(found, err)
				return
			}
			if u, ok := err.(unpacker); ok {
				for _, e := range u.Unpack() {
					collect(e)
				}
				return
			}
			c, ok := err.(causer)
			if !ok {
				return
			}
			err = c.Cause()
		}
	}
	if !isNilErr(err) {
		collect(err)
	}
	return found
}
