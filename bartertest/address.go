package bartertest

import (
	"encoding/binary"

	"github.com/iov-one/barter"
)

// SequenceID returns a stable address for n. Use it when a test needs many
// distinct accounts that do not sign.
func SequenceID(n uint64) barter.Address {
	seq := make([]byte, 8)
	binary.BigEndian.PutUint64(seq, n)
	return barter.NewCondition("test", "sequence", seq).Address()
}
