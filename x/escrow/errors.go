package escrow

import "github.com/iov-one/barter/errors"

// ErrAssetMismatch is returned when the assets or the vault referenced by a
// message do not match the ones bound to the escrow record.
var ErrAssetMismatch = errors.Register(1001, "asset mismatch")
