package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/gconf"
)

// Initializer fulfils the Initializer interface to load the escrow
// configuration from the genesis file.
type Initializer struct{}

var _ barter.Initializer = Initializer{}

// FromGenesis stores the "escrow" configuration. Missing values keep their
// defaults.
func (Initializer) FromGenesis(opts barter.Options, db barter.KVStore) error {
	conf := Configuration{RefundTarget: RefundToMaker}
	return gconf.InitConfig(db, opts, confPackage, &conf)
}
