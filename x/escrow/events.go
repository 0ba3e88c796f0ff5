package escrow

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/orm"
	"github.com/iov-one/cooloff/store"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// Kinds of events emitted by the ledger.
const (
	KindCreated  = "created"
	KindReleased = "released"
	KindReturned = "returned"
)

// Event is a durable record of a single state transition. Events are
// numbered in the order they were committed.
type Event struct {
	Seq       uint64          `json:"seq"`
	Kind      string          `json:"kind"`
	EscrowID  []byte          `json:"escrow_id"`
	Sender    cooloff.Address `json:"sender,omitempty"`
	Recipient cooloff.Address `json:"recipient,omitempty"`
	Amount    uint64          `json:"amount"`
	// ReleaseTime is only set for created events.
	ReleaseTime cooloff.UnixTime `json:"release_time,omitempty"`
	Height      int64            `json:"height"`
	Time        cooloff.UnixTime `json:"time"`
}

var _ orm.Model = (*Event)(nil)

// Validate ensures the event is well formed.
func (e *Event) Validate() error {
	if e.Seq == 0 {
		return errors.Wrap(errors.ErrModel, "missing sequence")
	}
	if len(e.EscrowID) != IDLength {
		return errors.Wrapf(errors.ErrModel, "escrow id %X", e.EscrowID)
	}
	switch e.Kind {
	case KindCreated:
		if err := e.Sender.Validate(); err != nil {
			return errors.Wrap(err, "sender")
		}
		if err := e.Recipient.Validate(); err != nil {
			return errors.Wrap(err, "recipient")
		}
	case KindReleased:
		if err := e.Recipient.Validate(); err != nil {
			return errors.Wrap(err, "recipient")
		}
	case KindReturned:
		if err := e.Sender.Validate(); err != nil {
			return errors.Wrap(err, "sender")
		}
	default:
		return errors.Wrapf(errors.ErrModel, "unknown kind %q", e.Kind)
	}
	if e.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// Tags returns the event as key value pairs, ready to be indexed.
func (e *Event) Tags() []cmn.KVPair {
	tags := []cmn.KVPair{
		{Key: []byte("action"), Value: []byte("escrow/" + e.Kind)},
		{Key: []byte("escrow"), Value: []byte(strings.ToUpper(hex.EncodeToString(e.EscrowID)))},
	}
	if e.Sender != nil {
		tags = append(tags, cmn.KVPair{Key: []byte("sender"), Value: []byte(e.Sender.String())})
	}
	if e.Recipient != nil {
		tags = append(tags, cmn.KVPair{Key: []byte("recipient"), Value: []byte(e.Recipient.String())})
	}
	tags = append(tags, cmn.KVPair{Key: []byte("amount"), Value: []byte(strconv.FormatUint(e.Amount, 10))})
	return tags
}

// Observer is notified about every committed event, in commit order.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc allows to use a function as an Observer.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) {
	f(e)
}

// eventLog is an append-only list of events.
type eventLog struct {
	bucket orm.Bucket
	seq    orm.Sequence
}

func newEventLog() eventLog {
	return eventLog{
		bucket: orm.NewBucket("event"),
		seq:    orm.NewSequence("event", "seq"),
	}
}

// Append numbers and stores the event.
func (l eventLog) Append(db cooloff.KVStore, e *Event) error {
	seq, err := l.seq.NextInt(db)
	if err != nil {
		return errors.Wrap(err, "event sequence")
	}
	e.Seq = seq
	return l.bucket.Put(db, orm.EncodeSequence(seq), e)
}

// After returns up to limit events with a sequence greater than after. A
// non positive limit returns all of them.
func (l eventLog) After(db cooloff.ReadOnlyKVStore, after uint64, limit int) ([]Event, error) {
	if after == ^uint64(0) {
		return nil, nil
	}
	_, end := store.PrefixRange(l.bucket.DBKey(nil))
	it, err := db.Iterator(l.bucket.DBKey(orm.EncodeSequence(after+1)), end)
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	defer it.Close()

	var events []Event
	for ; it.Valid(); it.Next() {
		if limit > 0 && len(events) == limit {
			break
		}
		var e Event
		if err := orm.Unmarshal(it.Value(), &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
