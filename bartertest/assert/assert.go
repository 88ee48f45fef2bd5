// Package assert holds the few test assertions used across barter. They
// stop the test on the first failure.
package assert

import (
	"reflect"

	"github.com/iov-one/barter/errors"
)

// Tester is the part of testing.TB the assertions need.
type Tester interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

// Nil fails unless value is nil or a typed nil. Errors are printed with
// their stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails unless both values are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("not equal\nwant %T %+v\n got %T %+v", want, want, got, got)
	}
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	panicked := func() (p bool) {
		defer func() { p = recover() != nil }()
		fn()
		return
	}()
	if !panicked {
		t.Fatalf("want a panic")
	}
}

// IsErr fails unless got is of the kind want. A nil want, including a
// typed nil *errors.Error, expects no error.
func IsErr(t Tester, want *errors.Error, got error) {
	t.Helper()
	if !want.Is(got) {
		t.Fatalf("want %v error, got %+v", kindName(want), got)
	}
}

// FieldError fails unless err holds exactly one error for the named field
// and that error is of the kind want. A nil want expects no error for the
// field.
func FieldError(t Tester, err error, field string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, field)
	switch {
	case want == nil && len(errs) != 0:
		t.Fatalf("want no %q error, got %q", field, errs)
	case want == nil:
	case len(errs) != 1:
		t.Fatalf("want one %q error, got %q", field, errs)
	case !want.Is(errs[0]):
		t.Fatalf("want %q to be a %v error, got %q", field, kindName(want), errs[0])
	}
}

func kindName(e *errors.Error) string {
	if e == nil {
		return "no"
	}
	return e.Error()
}
