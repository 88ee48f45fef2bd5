package escrow

import (
	"crypto/sha256"
	"encoding/binary"

	"filippo.io/edwards25519"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x/cash"
)

const (
	// derivationMarker is appended to every derivation.
	derivationMarker = "barter/derived"

	recordSeedTag = "escrow"
	vaultSeedTag  = "vault"
)

// FindProgramAddress returns the first address, searching the bump from 255
// down to 0, that is derived from the seeds and is not a valid ed25519
// point. The bump is stored in the record so the address can be
// re-derived without a search.
//
// Derived addresses cannot be claimed by a signer because the hash input
// always starts with a seed tag and ends with derivationMarker, while
// signer addresses hash a "sigs/..." condition. The off curve rule only
// keeps a derived address from being read as a public key.
func FindProgramAddress(seeds ...[]byte) (barter.Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		addr, err := CreateProgramAddress(uint8(bump), seeds...)
		if err == nil {
			return addr, uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrState, "no off curve address for seeds")
}

// CreateProgramAddress derives an address from the seeds and the bump. It
// fails if the result is a valid ed25519 point.
func CreateProgramAddress(bump uint8, seeds ...[]byte) (barter.Address, error) {
	h := sha256.New()
	for _, s := range seeds {
		_, _ = h.Write(s)
	}
	_, _ = h.Write([]byte{bump})
	_, _ = h.Write([]byte(derivationMarker))
	addr := h.Sum(nil)

	if onCurve(addr) {
		return nil, errors.Wrap(errors.ErrInput, "derived address is on curve")
	}
	return addr, nil
}

func onCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

func recordSeeds(maker barter.Address, seed uint64) [][]byte {
	var s [8]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	return [][]byte{[]byte(recordSeedTag), maker, s[:]}
}

// DeriveRecordAddress returns the address of the escrow opened by the maker
// with the given seed, together with the bump used.
func DeriveRecordAddress(maker barter.Address, seed uint64) (barter.Address, uint8, error) {
	if err := maker.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "maker")
	}
	return FindProgramAddress(recordSeeds(maker, seed)...)
}

// DeriveVaultAddress returns the address of the custody account that holds
// the asset for the escrow record.
func DeriveVaultAddress(record barter.Address, ticker string) (barter.Address, error) {
	if err := record.Validate(); err != nil {
		return nil, errors.Wrap(err, "record")
	}
	addr, _, err := FindProgramAddress(record, []byte(vaultSeedTag), []byte(ticker))
	return addr, err
}

// Authority is the proof presented to the ledger when funds owned by an
// escrow record are moved. It carries no secret. It authorizes exactly the
// address re-derived from its fields, so a stored value that does not
// derive the owner grants nothing.
type Authority struct {
	Maker barter.Address
	Seed  uint64
	Bump  uint8
}

var _ cash.Authority = Authority{}

// NewAuthority returns the authority of the given record.
func NewAuthority(r *EscrowRecord) Authority {
	return Authority{Maker: r.Maker, Seed: r.Seed, Bump: r.Bump}
}

// Address returns the address controlled by this authority.
func (a Authority) Address() (barter.Address, error) {
	if err := a.Maker.Validate(); err != nil {
		return nil, errors.Wrap(err, "maker")
	}
	return CreateProgramAddress(a.Bump, recordSeeds(a.Maker, a.Seed)...)
}

func (a Authority) Authorizes(ctx barter.Context, owner barter.Address) bool {
	addr, err := a.Address()
	if err != nil {
		return false
	}
	return addr.Equals(owner)
}
