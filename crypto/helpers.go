package crypto

import (
	"github.com/iov-one/barter"
)

// ExtensionName prefixes the conditions of signature keys.
const ExtensionName = "sigs"

// PubKey verifies signatures and names the condition they satisfy.
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() barter.Condition
}

// Signer produces signatures without exposing the private key, so a
// hardware wallet can implement it.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}
