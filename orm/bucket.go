/*
Package orm splits the state into buckets. A bucket owns every key that
starts with its name and a colon, and a ModelBucket stores a single model
type in it. Buckets double as query handlers for the bucket content.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// isBucketName keeps bucket names out of the "_" namespace used for
// internal keys.
var isBucketName = regexp.MustCompile(`^[a-z][a-z_]{2,9}$`).MatchString

// Bucket reads and writes raw bytes under its prefix.
type Bucket struct {
	name   string
	prefix []byte
}

var _ barter.QueryHandler = Bucket{}

// NewBucket panics on an invalid name. Buckets are declared at start up.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":")}
}

func (b Bucket) Name() string {
	return b.name
}

// DBKey prefixes key. The result never shares memory with key.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	out = append(out, b.prefix...)
	return append(out, key...)
}

// Get returns nil for a missing key.
func (b Bucket) Get(db barter.ReadOnlyKVStore, key []byte) ([]byte, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return raw, nil
}

func (b Bucket) Set(db barter.KVStore, key, value []byte) error {
	if len(key) == 0 {
		return errors.Wrapf(errors.ErrEmpty, "%s key", b.name)
	}
	if err := db.Set(b.DBKey(key), value); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (b Bucket) Delete(db barter.KVStore, key []byte) error {
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Register serves the bucket at "/<name>". An empty name uses the bucket
// name.
func (b Bucket) Register(name string, r barter.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query looks up a single key or, with the prefix modifier, every key
// starting with data. Returned keys include the bucket prefix.
func (b Bucket) Query(db barter.ReadOnlyKVStore, mod string, data []byte) ([]barter.Model, error) {
	key := b.DBKey(data)
	switch mod {
	case barter.KeyQueryMod:
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []barter.Model{barter.Pair(key, value)}, nil
	case barter.PrefixQueryMod:
		return queryPrefix(db, key)
	}
	return nil, errors.Wrapf(errors.ErrInput, "query modifier %q", mod)
}
