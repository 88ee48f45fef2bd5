package barter

import (
	"testing"

	"github.com/iov-one/barter/errors"
)

type demoMsg struct {
	Num  int
	Text string
}

func (demoMsg) Path() string { return "demo/path" }

func (m demoMsg) Validate() error {
	if m.Num < 0 {
		return errors.Wrap(errors.ErrMsg, "negative number")
	}
	return nil
}

func (demoMsg) Marshal() ([]byte, error)   { return []byte("foo"), nil }
func (*demoMsg) Unmarshal(bz []byte) error { return nil }

var _ Msg = (*demoMsg)(nil)

type otherMsg struct{ demoMsg }

type container struct {
	Demo  *demoMsg
	Other *otherMsg
}

type badContainer struct {
	Demo *demoMsg
	Name *string
}

type txMock struct {
	msg Msg
	err error
}

func (txMock) Marshal() ([]byte, error)   { return nil, nil }
func (*txMock) Unmarshal(bz []byte) error { return nil }
func (t txMock) GetMsg() (Msg, error)     { return t.msg, t.err }

func TestExtractMsgFromFields(t *testing.T) {
	msg := &demoMsg{Num: 17, Text: "hello"}
	name := "name"

	cases := map[string]struct {
		input   interface{}
		wantErr *errors.Error
	}{
		"success": {
			input: &container{Demo: msg},
		},
		"nil input is not allowed": {
			input:   nil,
			wantErr: errors.ErrInput,
		},
		"invalid input content, number": {
			input:   7,
			wantErr: errors.ErrInput,
		},
		"container must be a pointer": {
			input:   container{Demo: msg},
			wantErr: errors.ErrInput,
		},
		"empty container": {
			input:   &container{},
			wantErr: errors.ErrState,
		},
		"two messages set": {
			input:   &container{Demo: msg, Other: &otherMsg{}},
			wantErr: errors.ErrState,
		},
		"field that is not a message": {
			input:   &badContainer{Name: &name},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ExtractMsgFromFields(tc.input)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && got != Msg(msg) {
				t.Fatalf("unexpected message: %#v", got)
			}
		})
	}
}

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    interface{}
		wantErr *errors.Error
	}{
		"success": {
			tx:   &txMock{msg: &demoMsg{Num: 1}},
			dest: &demoMsg{},
		},
		"invalid message": {
			tx:      &txMock{msg: &demoMsg{Num: -1}},
			dest:    &demoMsg{},
			wantErr: errors.ErrMsg,
		},
		"missing message": {
			tx:      &txMock{},
			dest:    &demoMsg{},
			wantErr: errors.ErrState,
		},
		"message error is passed through": {
			tx:      &txMock{err: errors.ErrNotFound},
			dest:    &demoMsg{},
			wantErr: errors.ErrNotFound,
		},
		"wrong destination type": {
			tx:      &txMock{msg: &demoMsg{Num: 1}},
			dest:    &otherMsg{},
			wantErr: errors.ErrType,
		},
		"destination is not a pointer": {
			tx:      &txMock{msg: &demoMsg{Num: 1}},
			dest:    demoMsg{},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := LoadMsg(tc.tx, tc.dest); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	if got := GetPath(&txMock{msg: &demoMsg{}}); got != "demo/path" {
		t.Fatalf("unexpected path: %q", got)
	}
	if got := GetPath(&txMock{}); got != "(missing)" {
		t.Fatalf("unexpected path: %q", got)
	}
}
