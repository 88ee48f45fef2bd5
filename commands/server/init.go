package server

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"io/ioutil"
	"path/filepath"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/crypto"
	"github.com/iov-one/barter/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	flagForce   = "f"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisPath returns the location of the tendermint genesis file in home.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// GenerateCoinKey returns the address of a new public key, along with the
// hex encoded private key. You can give coins to this address and return
// the key to the user to access them.
func GenerateCoinKey() (barter.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	addr := privKey.PublicKey().Address()
	raw, err := privKey.Marshal()
	if err != nil {
		return nil, "", errors.Wrap(err, "marshal private key")
	}
	return addr, hex.EncodeToString(raw), nil
}

// InitCmd will add the app_state to the genesis file created by
// `tendermint init`. The application passes in a function to generate the
// options. An existing app_state is overwritten only with the -f flag.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var force bool
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.BoolVar(&force, flagForce, false, "overwrite existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}

	genFile := GenesisPath(home)
	if err := addGenesisOptions(genFile, options, force); err != nil {
		return err
	}
	logger.Info("App state written to genesis", "path", genFile)
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "read genesis, run `tendermint init` first")
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if !force && hasAppState(doc) {
		return errors.Wrap(errors.ErrState, "app_state already set, use -f to overwrite")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize genesis")
	}
	return ioutil.WriteFile(filename, out, 0600)
}

func hasAppState(doc GenesisDoc) bool {
	state := string(doc[appStateKey])
	return state != "" && state != "null" && state != "{}" && state != `""`
}
