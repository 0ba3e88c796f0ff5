package escrow

import (
	"encoding/binary"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/orm"
	"golang.org/x/crypto/sha3"
)

// IDLength is the length of every escrow id.
const IDLength = 32

// Escrow is the persisted state of a single escrow.
type Escrow struct {
	ID          []byte           `json:"id"`
	Sender      cooloff.Address  `json:"sender"`
	Recipient   cooloff.Address  `json:"recipient"`
	Amount      uint64           `json:"amount"`
	CreatedAt   cooloff.UnixTime `json:"created_at"`
	ReleaseTime cooloff.UnixTime `json:"release_time"`
	IsReleased  bool             `json:"is_released"`
	IsReturned  bool             `json:"is_returned"`
	IsActive    bool             `json:"is_active"`
}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is consistent.
func (e *Escrow) Validate() error {
	if len(e.ID) != IDLength {
		return errors.Wrapf(errors.ErrModel, "id %X", e.ID)
	}
	if err := e.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := e.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if e.Sender.Equals(e.Recipient) {
		return errors.Wrap(errors.ErrModel, "sender and recipient are the same")
	}
	if e.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if err := e.CreatedAt.Validate(); err != nil {
		return errors.Wrap(err, "created at")
	}
	if e.ReleaseTime < e.CreatedAt {
		return errors.Wrap(errors.ErrModel, "release time before creation")
	}
	if e.IsReleased && e.IsReturned {
		return errors.Wrap(errors.ErrModel, "both released and returned")
	}
	if e.IsActive == (e.IsReleased || e.IsReturned) {
		return errors.Wrap(errors.ErrModel, "active flag out of sync")
	}
	return nil
}

// Address returns the address holding the escrow funds.
func (e *Escrow) Address() cooloff.Address {
	return Condition(e.ID).Address()
}

// Condition returns the condition controlling the funds of the escrow with
// the given id.
func Condition(id []byte) cooloff.Condition {
	return cooloff.NewCondition("escrow", "seq", id)
}

// Status is the state of an escrow as seen at a given time.
type Status struct {
	IsActive   bool `json:"is_active"`
	IsReleased bool `json:"is_released"`
	IsReturned bool `json:"is_returned"`
	// TimeRemaining is the number of seconds until the release time,
	// never negative.
	TimeRemaining int64 `json:"time_remaining"`
}

// StatusAt derives the status of the escrow at the given time.
func (e *Escrow) StatusAt(now cooloff.UnixTime) Status {
	remaining := int64(e.ReleaseTime - now)
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		IsActive:      e.IsActive,
		IsReleased:    e.IsReleased,
		IsReturned:    e.IsReturned,
		TimeRemaining: remaining,
	}
}

// CanReturn is true if the sender may take the funds back at the given time.
func (e *Escrow) CanReturn(now cooloff.UnixTime) bool {
	return e.IsActive && !e.IsReleased && !e.IsReturned && now < e.ReleaseTime
}

// CanRelease is true if the recipient may withdraw the funds at the given
// time.
func (e *Escrow) CanRelease(now cooloff.UnixTime) bool {
	return e.IsActive && !e.IsReleased && !e.IsReturned && now >= e.ReleaseTime
}

// Bucket stores escrows by id.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns the bucket used for all escrows.
func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket("esc")}
}

// Get loads the escrow. ErrNotFound is returned if there is none.
func (b Bucket) Get(db cooloff.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	var e Escrow
	if err := b.One(db, id, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Save stores the escrow under its id.
func (b Bucket) Save(db cooloff.KVStore, e *Escrow) error {
	return b.Put(db, e.ID, e)
}

// escrowID derives the id of a new escrow. The sequence value makes ids
// unique for identical parties, amount and time.
func escrowID(sender, recipient cooloff.Address, amount uint64, createdAt cooloff.UnixTime, seq uint64) []byte {
	num := make([]byte, 8)
	h := sha3.NewLegacyKeccak256()
	h.Write(sender)
	h.Write(recipient)
	binary.BigEndian.PutUint64(num, amount)
	h.Write(num)
	binary.BigEndian.PutUint64(num, uint64(createdAt))
	h.Write(num)
	binary.BigEndian.PutUint64(num, seq)
	h.Write(num)
	return h.Sum(nil)
}
