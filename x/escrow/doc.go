/*
Package escrow implements a two party atomic asset swap.

A maker opens an escrow by depositing some amount of asset A into a vault
and stating how much of asset B they want in exchange. Any taker can then
fulfill the escrow. In one atomic step the taker pays the required amount of
asset B to the maker, receives the whole vault balance and the escrow record
is destroyed. There is no partial fill, expiry or cancellation.

Neither the record nor the vault have a private key. Both addresses are
derived from public seeds and are guaranteed not to be valid ed25519 public
keys. Funds held by the vault can only be moved by presenting the seeds
that derive the record address, which is what the Authority type does.
*/
package escrow
