package orm

import (
	"regexp"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores models of a single kind under a common key prefix.
type Bucket struct {
	prefix []byte
}

// NewBucket creates a bucket to store data. Name must be lowercase letters
// only, 3 to 10 characters.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic("illegal bucket: " + name)
	}
	return Bucket{prefix: []byte(name + ":")}
}

// DBKey is the full key used in the store for the given model key.
func (b Bucket) DBKey(key []byte) []byte {
	return append(append([]byte(nil), b.prefix...), key...)
}

// Has returns true if a model exists under the given key.
func (b Bucket) Has(db cooloff.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// One loads the model stored under the key into dst. ErrNotFound is
// returned if there is none.
func (b Bucket) One(db cooloff.ReadOnlyKVStore, key []byte, dst interface{}) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%X", key)
	}
	return Unmarshal(raw, dst)
}

// Put validates and stores the model under the key.
func (b Bucket) Put(db cooloff.KVStore, key []byte, m Model) error {
	raw, err := Marshal(m)
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(key), raw)
}
