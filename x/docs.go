/*
Package x contains the authentication helpers shared by all extensions.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct the barter application.
Each sub-package owns one concern: x/sigs authenticates signers,
x/cash keeps the asset ledger and x/escrow implements the swap.

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `escrow.OpenMsg` in place of `escrow.EscrowOpenMsg`.
*/
package x
