/*
Package errors implements the error kinds used across barter.

Reuse the errors declared in this package wherever possible and register a
custom error only when the failure is specific to a single extension. Each
registered error carries a unique ABCI code, which allows a client to
distinguish failures without parsing the message.

To declare a new root error use Register(code, description). To create an
instance at runtime use ErrXyz.New, ErrXyz.Newf or Wrap. The first wrap
attaches a stack trace that can be inspected with the github.com/pkg/errors
helpers.

Use ErrXyz.Is(err) to test the kind of an error. It unwraps the error chain
and inspects every member of a group created with Append.
*/
package errors
