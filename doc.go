/*
Package barter defines interfaces used throughout the app, such as storage,
transactions, handlers and queries. It also contains helpers to work with
addresses, conditions, context and abci results.

We pass context through context.Context between app, decorators and
handlers. There should exist two functions for every XYZ of type T that we
want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).

Extensions live under x/. The escrow extension (x/escrow) implements the
two party atomic swap on top of the asset ledger (x/cash).
*/
package barter
