package cash

import (
	"context"
	"sync"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
)

// CoinMover is an interface for moving value between accounts. It is the
// fund-transfer primitive the ledger relies on.
type CoinMover interface {
	// MoveCoins moves the given amount from src to dest. If src doesn't
	// have sufficient funds, or the payee rejects the payment, it fails
	// and the caller must drop all changes made to db.
	MoveCoins(ctx context.Context, db cooloff.KVStore, src, dest cooloff.Address, amount uint64) error
}

// CoinMinter is an interface to create new value.
type CoinMinter interface {
	CoinMint(db cooloff.KVStore, dest cooloff.Address, amount uint64) error
}

// Receiver is invoked after a wallet is credited.
type Receiver interface {
	Receive(ctx context.Context, from cooloff.Address, amount uint64) error
}

// ReceiverFunc allows to use a function as a Receiver.
type ReceiverFunc func(ctx context.Context, from cooloff.Address, amount uint64) error

// Receive calls f(ctx, from, amount).
func (f ReceiverFunc) Receive(ctx context.Context, from cooloff.Address, amount uint64) error {
	return f(ctx, from, amount)
}

// Controller is the functionality needed by cash.Handler and extensions
// that move value around.
type Controller struct {
	bucket Bucket

	mu        sync.RWMutex
	receivers map[string]Receiver
}

var _ CoinMover = (*Controller)(nil)
var _ CoinMinter = (*Controller)(nil)

// NewController returns a controller using the default wallet bucket.
func NewController() *Controller {
	return &Controller{
		bucket:    NewBucket(),
		receivers: make(map[string]Receiver),
	}
}

// OnReceive attaches a receiver to the address, replacing any previous
// one. A nil receiver detaches it.
func (c *Controller) OnReceive(addr cooloff.Address, r Receiver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r == nil {
		delete(c.receivers, string(addr))
		return
	}
	c.receivers[string(addr)] = r
}

func (c *Controller) receiver(addr cooloff.Address) Receiver {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.receivers[string(addr)]
}

// Balance returns the balance of the address.
func (c *Controller) Balance(db cooloff.ReadOnlyKVStore, addr cooloff.Address) (uint64, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest, then notifies the
// receiver of dest, if any.
func (c *Controller) MoveCoins(ctx context.Context, db cooloff.KVStore, src, dest cooloff.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	recipient, err := c.bucket.Get(db, dest)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, src, sender); err != nil {
		return err
	}
	if err := c.bucket.Save(db, dest, recipient); err != nil {
		return err
	}

	if r := c.receiver(dest); r != nil {
		if err := r.Receive(ctx, src, amount); err != nil {
			return errors.Wrap(err, "payment rejected by recipient")
		}
	}
	return nil
}

// CoinMint attempts to add the given amount to the destination address.
// Fails if it overflows the wallet.
func (c *Controller) CoinMint(db cooloff.KVStore, dest cooloff.Address, amount uint64) error {
	w, err := c.bucket.Get(db, dest)
	if err != nil {
		return err
	}
	if err := w.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, w)
}
