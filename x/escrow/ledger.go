package escrow

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/orm"
	"github.com/iov-one/cooloff/x"
	"github.com/iov-one/cooloff/x/cash"
)

// Ledger owns all escrows and the participant index.
//
// Mutating operations are never executed concurrently. A call that arrives
// while another one is in progress, including a call made by a payee while
// being paid, fails with ErrReentrancy. Reads can be called at any time and
// always see the last committed state.
type Ledger struct {
	db   cooloff.CacheableKVStore
	auth x.Authenticator
	bank cash.CoinMover

	bucket Bucket
	index  orm.ListIndex
	seq    orm.Sequence
	events eventLog

	observers []Observer

	// inFlight is 1 while a mutating call is executed.
	inFlight int32
	// mu guards db against reads while a change is written.
	mu sync.RWMutex
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithObserver registers an observer notified about every committed event.
func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		l.observers = append(l.observers, o)
	}
}

// NewLedger returns a ledger keeping its state in db. The caller of every
// operation is the main signer resolved by auth. All funds are moved
// using bank.
func NewLedger(db cooloff.CacheableKVStore, auth x.Authenticator, bank cash.CoinMover, opts ...Option) *Ledger {
	l := &Ledger{
		db:     db,
		auth:   auth,
		bank:   bank,
		bucket: NewBucket(),
		index:  orm.NewListIndex("pidx"),
		seq:    orm.NewSequence("esc", "id"),
		events: newEventLog(),
	}
	for _, fn := range opts {
		fn(l)
	}
	return l
}

// Create moves amount from the caller to a new escrow for the recipient
// and returns its id.
func (l *Ledger) Create(ctx context.Context, info cooloff.BlockInfo, recipient cooloff.Address, amount uint64) ([]byte, error) {
	id, _, err := l.create(ctx, info, recipient, amount)
	return id, err
}

func (l *Ledger) create(ctx context.Context, info cooloff.BlockInfo, recipient cooloff.Address, amount uint64) ([]byte, []Event, error) {
	var id []byte
	events, err := l.mutate(info, func(db cooloff.KVStore) ([]Event, error) {
		signer := x.MainSigner(ctx, l.auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		sender := signer.Address()

		if amount == 0 {
			return nil, errors.Wrap(errors.ErrAmount, "zero amount")
		}
		if err := recipient.Validate(); err != nil {
			return nil, errors.Wrap(err, "recipient")
		}
		if recipient.IsZero() {
			return nil, errors.Wrap(errors.ErrInput, "zero recipient")
		}
		if recipient.Equals(sender) {
			return nil, errors.Wrap(errors.ErrInput, "recipient is the sender")
		}

		conf, err := LoadConfiguration(db)
		if err != nil {
			return nil, errors.Wrap(err, "configuration")
		}
		seq, err := l.seq.NextInt(db)
		if err != nil {
			return nil, errors.Wrap(err, "cannot acquire key")
		}
		now := info.UnixTime()
		esc := &Escrow{
			ID:          escrowID(sender, recipient, amount, now, seq),
			Sender:      sender,
			Recipient:   recipient,
			Amount:      amount,
			CreatedAt:   now,
			ReleaseTime: now.Add(conf.Window),
			IsActive:    true,
		}
		if err := l.bucket.Save(db, esc); err != nil {
			return nil, errors.Wrap(err, "cannot store escrow")
		}
		if err := l.index.Append(db, sender, esc.ID); err != nil {
			return nil, errors.Wrap(err, "sender index")
		}
		if err := l.index.Append(db, recipient, esc.ID); err != nil {
			return nil, errors.Wrap(err, "recipient index")
		}
		if err := l.bank.MoveCoins(ctx, db, sender, esc.Address(), amount); err != nil {
			return nil, errors.Wrapf(ErrTransferFailure, "deposit: %s", err)
		}

		ev := Event{
			Kind:        KindCreated,
			EscrowID:    esc.ID,
			Sender:      sender,
			Recipient:   recipient,
			Amount:      amount,
			ReleaseTime: esc.ReleaseTime,
		}
		if err := l.appendEvent(db, info, &ev); err != nil {
			return nil, err
		}
		id = esc.ID
		return []Event{ev}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return id, events, nil
}

// Release pays the escrow amount to its recipient. Only the recipient can
// release, and only from the release time on.
func (l *Ledger) Release(ctx context.Context, info cooloff.BlockInfo, id []byte) error {
	_, err := l.release(ctx, info, id)
	return err
}

func (l *Ledger) release(ctx context.Context, info cooloff.BlockInfo, id []byte) ([]Event, error) {
	return l.mutate(info, func(db cooloff.KVStore) ([]Event, error) {
		esc, err := l.active(db, id)
		if err != nil {
			return nil, err
		}
		if !l.auth.HasAddress(ctx, esc.Recipient) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "only the recipient can release")
		}
		if err := notFinalized(esc); err != nil {
			return nil, err
		}
		if !info.IsExpired(esc.ReleaseTime) {
			return nil, errors.Wrapf(ErrWindowViolation, "release possible from %d", esc.ReleaseTime)
		}

		// State is final before any funds leave the escrow.
		esc.IsReleased = true
		esc.IsActive = false
		if err := l.bucket.Save(db, esc); err != nil {
			return nil, errors.Wrap(err, "cannot store escrow")
		}
		if err := l.bank.MoveCoins(ctx, db, esc.Address(), esc.Recipient, esc.Amount); err != nil {
			return nil, errors.Wrapf(ErrTransferFailure, "release: %s", err)
		}

		ev := Event{
			Kind:      KindReleased,
			EscrowID:  esc.ID,
			Recipient: esc.Recipient,
			Amount:    esc.Amount,
		}
		if err := l.appendEvent(db, info, &ev); err != nil {
			return nil, err
		}
		return []Event{ev}, nil
	})
}

// Return pays the escrow amount back to its sender. Only the sender can
// return, and only before the release time.
func (l *Ledger) Return(ctx context.Context, info cooloff.BlockInfo, id []byte) error {
	_, err := l.doReturn(ctx, info, id)
	return err
}

func (l *Ledger) doReturn(ctx context.Context, info cooloff.BlockInfo, id []byte) ([]Event, error) {
	return l.mutate(info, func(db cooloff.KVStore) ([]Event, error) {
		esc, err := l.active(db, id)
		if err != nil {
			return nil, err
		}
		if !l.auth.HasAddress(ctx, esc.Sender) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "only the sender can return")
		}
		if err := notFinalized(esc); err != nil {
			return nil, err
		}
		if info.IsExpired(esc.ReleaseTime) {
			return nil, errors.Wrapf(ErrWindowViolation, "return possible until %d", esc.ReleaseTime)
		}

		esc.IsReturned = true
		esc.IsActive = false
		if err := l.bucket.Save(db, esc); err != nil {
			return nil, errors.Wrap(err, "cannot store escrow")
		}
		if err := l.bank.MoveCoins(ctx, db, esc.Address(), esc.Sender, esc.Amount); err != nil {
			return nil, errors.Wrapf(ErrTransferFailure, "return: %s", err)
		}

		ev := Event{
			Kind:     KindReturned,
			EscrowID: esc.ID,
			Sender:   esc.Sender,
			Amount:   esc.Amount,
		}
		if err := l.appendEvent(db, info, &ev); err != nil {
			return nil, err
		}
		return []Event{ev}, nil
	})
}

// active loads an escrow that can still change.
func (l *Ledger) active(db cooloff.ReadOnlyKVStore, id []byte) (*Escrow, error) {
	esc, err := l.bucket.Get(db, id)
	if err != nil {
		return nil, err
	}
	if !esc.IsActive {
		return nil, errors.Wrapf(ErrAlreadyFinalized, "escrow %X is not active", id)
	}
	return esc, nil
}

func notFinalized(esc *Escrow) error {
	if esc.IsReleased {
		return errors.Wrap(ErrAlreadyFinalized, "released")
	}
	if esc.IsReturned {
		return errors.Wrap(ErrAlreadyFinalized, "returned")
	}
	return nil
}

func (l *Ledger) appendEvent(db cooloff.KVStore, info cooloff.BlockInfo, ev *Event) error {
	ev.Height = info.Height()
	ev.Time = info.UnixTime()
	if err := l.events.Append(db, ev); err != nil {
		return errors.Wrap(err, "cannot store event")
	}
	return nil
}

// mutate executes fn as a single atomic unit of work. Nothing fn writes is
// visible unless it returns no error. Only one mutate call can be in
// progress at a time.
func (l *Ledger) mutate(info cooloff.BlockInfo, fn func(cooloff.KVStore) ([]Event, error)) ([]Event, error) {
	if !atomic.CompareAndSwapInt32(&l.inFlight, 0, 1) {
		info.Logger().Error("rejected nested ledger call", "module", "escrow")
		return nil, errors.Wrap(ErrReentrancy, "another operation is in progress")
	}
	events, err := l.apply(fn)
	atomic.StoreInt32(&l.inFlight, 0)
	if err != nil {
		return nil, err
	}

	logger := info.Logger().With("module", "escrow")
	for _, ev := range events {
		logger.Info("escrow "+ev.Kind, "escrow", fmt.Sprintf("%X", ev.EscrowID), "amount", ev.Amount, "seq", ev.Seq)
		for _, o := range l.observers {
			o.OnEvent(ev)
		}
	}
	return events, nil
}

func (l *Ledger) apply(fn func(cooloff.KVStore) ([]Event, error)) (events []Event, err error) {
	cache := l.db.CacheWrap()
	defer func() {
		if err != nil {
			cache.Discard()
		}
	}()
	defer errors.Recover(&err)

	events, err = fn(cache)
	if err != nil {
		return nil, err
	}
	if err := l.commit(cache); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return events, nil
}

func (l *Ledger) commit(cache cooloff.KVCacheWrap) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cache.Write()
}

// Escrow returns the escrow with the given id. ErrNotFound is returned if
// there is none.
func (l *Ledger) Escrow(id []byte) (*Escrow, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.bucket.Get(l.db, id)
}

// UserEscrows returns the ids of all escrows the address is the sender or
// the recipient of, in creation order.
func (l *Ledger) UserEscrows(addr cooloff.Address) ([][]byte, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.index.List(l.db, addr)
}

// Status returns the status of the escrow at the time of the block.
func (l *Ledger) Status(info cooloff.BlockInfo, id []byte) (*Status, error) {
	esc, err := l.Escrow(id)
	if err != nil {
		return nil, err
	}
	s := esc.StatusAt(info.UnixTime())
	return &s, nil
}

// CanRelease reports whether the escrow can be released at the time of the
// block.
func (l *Ledger) CanRelease(info cooloff.BlockInfo, id []byte) (bool, error) {
	esc, err := l.Escrow(id)
	if err != nil {
		return false, err
	}
	return esc.CanRelease(info.UnixTime()), nil
}

// CanReturn reports whether the escrow can be returned at the time of the
// block.
func (l *Ledger) CanReturn(info cooloff.BlockInfo, id []byte) (bool, error) {
	esc, err := l.Escrow(id)
	if err != nil {
		return false, err
	}
	return esc.CanReturn(info.UnixTime()), nil
}

// Events returns up to limit events committed after the given sequence
// number. Use zero to read from the beginning.
func (l *Ledger) Events(after uint64, limit int) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.events.After(l.db, after, limit)
}
