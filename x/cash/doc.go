/*
Package cash is the asset ledger. It keeps a wallet per address, moves coins
between wallets and guards custody accounts.

A custody account is a wallet with an owner. Coins are taken out of it only
by a Transfer whose Authority authorizes that owner. This lets another
extension hold funds under an address nobody has a key for.
*/
package cash
