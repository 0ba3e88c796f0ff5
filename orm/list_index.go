package orm

import (
	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/store"
)

// ListIndex keeps for every owner an append-only list of references, in
// insertion order. The same reference may be appended to many owners.
//
// Entries are stored as
//    <name>:<owner length><owner><8 byte position> -> reference
// and a per owner counter provides the position.
type ListIndex struct {
	name string
}

// NewListIndex returns an index stored under the given name.
func NewListIndex(name string) ListIndex {
	if !isBucketName(name) {
		panic("illegal index name: " + name)
	}
	return ListIndex{name: name}
}

func (x ListIndex) ownerPrefix(owner []byte) []byte {
	if len(owner) > 255 {
		panic("owner key too long")
	}
	prefix := make([]byte, 0, len(x.name)+2+len(owner))
	prefix = append(prefix, x.name...)
	prefix = append(prefix, ':', byte(len(owner)))
	return append(prefix, owner...)
}

func (x ListIndex) counter(owner []byte) Sequence {
	return Sequence{id: append([]byte("_s."), x.ownerPrefix(owner)...)}
}

// Append adds the reference at the end of the owner's list.
func (x ListIndex) Append(db cooloff.KVStore, owner, ref []byte) error {
	if len(owner) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	if len(ref) == 0 {
		return errors.Wrap(errors.ErrEmpty, "reference")
	}
	pos, err := x.counter(owner).NextVal(db)
	if err != nil {
		return errors.Wrap(err, "position")
	}
	key := append(x.ownerPrefix(owner), pos...)
	return db.Set(key, ref)
}

// List returns all references of the owner, in insertion order. An owner
// without references has an empty list.
func (x ListIndex) List(db cooloff.ReadOnlyKVStore, owner []byte) ([][]byte, error) {
	start, end := store.PrefixRange(x.ownerPrefix(owner))
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	defer it.Close()

	var refs [][]byte
	for ; it.Valid(); it.Next() {
		refs = append(refs, append([]byte(nil), it.Value()...))
	}
	return refs, nil
}
