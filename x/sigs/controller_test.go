package sigs

import (
	"bytes"
	"testing"

	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
)

func TestBuildSignBytes(t *testing.T) {
	payload := []byte("swap 100 A for 50 B")

	a, err := BuildSignBytes(payload, "test-chain", 0)
	assert.Nil(t, err)
	assert.Equal(t, 64, len(a))

	again, err := BuildSignBytes(payload, "test-chain", 0)
	assert.Nil(t, err)
	assert.Equal(t, a, again)

	otherSeq, err := BuildSignBytes(payload, "test-chain", 1)
	assert.Nil(t, err)
	otherChain, err := BuildSignBytes(payload, "other-chain", 0)
	assert.Nil(t, err)
	if bytes.Equal(a, otherSeq) || bytes.Equal(a, otherChain) {
		t.Fatal("sign bytes must depend on the sequence and the chain")
	}

	if _, err := BuildSignBytes(payload, "test-chain", -1); !ErrInvalidSequence.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if _, err := BuildSignBytes(payload, "bad", 0); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestVerifySignature(t *testing.T) {
	const chainID = "test-chain"
	db := store.MemStore()
	key := bartertest.NewKey()

	tx := NewStdTx([]byte("first"))
	sign(t, tx, key, chainID, 0)

	signers, err := VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(signers))
	if !signers[0].Equals(key.PublicKey().Condition()) {
		t.Fatalf("unexpected signer: %s", signers[0])
	}

	nonce, err := NextNonce(db, key.PublicKey().Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), nonce)

	// The very same transaction cannot be submitted twice.
	if _, err := VerifyTxSignatures(db, tx, chainID); !ErrInvalidSequence.Is(err) {
		t.Fatalf("replay not rejected: %+v", err)
	}

	// Signed for a different chain.
	other := NewStdTx([]byte("second"))
	sign(t, other, key, "other-chain", 1)
	if _, err := VerifyTxSignatures(db, other, chainID); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	// Signature does not match the content.
	tampered := NewStdTx([]byte("second"))
	sign(t, tampered, key, chainID, 1)
	tampered.Msg = &bartertest.Msg{Serialized: []byte("tampered")}
	if _, err := VerifyTxSignatures(db, tampered, chainID); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	next := NewStdTx([]byte("second"))
	sign(t, next, key, chainID, 1)
	_, err = VerifyTxSignatures(db, next, chainID)
	assert.Nil(t, err)

	nonce, err = NextNonce(db, key.PublicKey().Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(2), nonce)
}

func TestVerifyTxSignaturesMissingFields(t *testing.T) {
	db := store.MemStore()
	key := bartertest.NewKey()

	tx := NewStdTx([]byte("data"))
	sign(t, tx, key, "test-chain", 0)
	tx.Signatures[0].Signature = nil
	if _, err := VerifyTxSignatures(db, tx, "test-chain"); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	tx.Signatures[0] = &StdSignature{Sequence: -2}
	if _, err := VerifyTxSignatures(db, tx, "test-chain"); !ErrInvalidSequence.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestUserDataSequence(t *testing.T) {
	key := bartertest.NewKey()
	u := UserData{Pubkey: key.PublicKey()}

	assert.Nil(t, u.CheckAndIncrementSequence(0))
	assert.Equal(t, int64(1), u.Sequence)
	if err := u.CheckAndIncrementSequence(0); !ErrInvalidSequence.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	u.Sequence = (1 << 53) - 1
	if err := u.CheckAndIncrementSequence(u.Sequence); !errors.ErrOverflow.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	invalid := UserData{Sequence: 4}
	if err := invalid.Validate(); !ErrInvalidSequence.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestUserDataSerialization(t *testing.T) {
	key := bartertest.NewKey()
	u := UserData{Pubkey: key.PublicKey(), Sequence: 17}

	raw, err := u.Marshal()
	assert.Nil(t, err)
	var got UserData
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, u.Sequence, got.Sequence)
	assert.Equal(t, u.Pubkey.Ed25519, got.Pubkey.Ed25519)
}
