package crypto

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"golang.org/x/crypto/ed25519"
)

var (
	_ PubKey = (*PublicKey)(nil)
	_ Signer = (*PrivateKey)(nil)
)

// Verify is false for a malformed key or signature.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	key, raw := p.GetEd25519(), sig.GetEd25519()
	if len(key) != ed25519.PublicKeySize || len(raw) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(key, message, raw)
}

// Condition is "sigs/ed25519/<key>", or nil for an empty key.
func (p *PublicKey) Condition() barter.Condition {
	key := p.GetEd25519()
	if len(key) == 0 {
		return nil
	}
	return barter.NewCondition(ExtensionName, "ed25519", key)
}

func (p *PublicKey) Address() barter.Address {
	return p.Condition().Address()
}

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	key := p.GetEd25519()
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "private key of %d bytes", len(key))
	}
	return &Signature{Ed25519: ed25519.Sign(key, message)}, nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a key from crypto/rand. It panics when the
// system has no randomness.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed derives a key from a 32 byte seed and panics on
// any other length.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
