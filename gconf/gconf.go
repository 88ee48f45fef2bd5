package gconf

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// ReadStore is the part of a store Load needs.
type ReadStore interface {
	Get(key []byte) ([]byte, error)
}

// Store is the part of a store Save needs.
type Store interface {
	ReadStore
	Set(key, value []byte) error
}

// Configuration is a protobuf message that validates itself.
type Configuration interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// key puts configurations under "_c:". Bucket names cannot start with an
// underscore.
func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg,
// replacing the previous one.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "encode %s configuration", pkg)
	}
	if err := db.Set(key(pkg), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Load reads the configuration of pkg into dst. It fails with ErrNotFound
// when none was saved.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	return errors.Wrapf(dst.Unmarshal(raw), "decode %s configuration", pkg)
}

// InitConfig saves the genesis document opts[pkg] as the configuration of
// pkg. When the genesis has no such document conf is saved unchanged, so
// it should hold the defaults.
func InitConfig(db Store, opts barter.Options, pkg string, conf Configuration) error {
	if err := opts.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
