package weavetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/cooloff"
)

var counter uint64

// NewCondition returns a new and unique condition. Each call returns a
// different value.
func NewCondition() cooloff.Condition {
	n := atomic.AddUint64(&counter, 1)
	return cooloff.NewCondition("test", "seq", SequenceID(n))
}

// SequenceID returns an 8 byte big endian representation of the given
// number.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
