package cash

import (
	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/orm"
)

// Wallet holds the balance of a single address, in the smallest currency
// unit.
type Wallet struct {
	Balance uint64 `json:"balance"`
}

// Validate implements orm.Model. Any balance is valid.
func (w *Wallet) Validate() error {
	return nil
}

// Add credits the wallet. It fails if the balance would overflow.
func (w *Wallet) Add(amount uint64) error {
	if w.Balance+amount < w.Balance {
		return errors.Wrapf(errors.ErrOverflow, "balance %d + %d", w.Balance, amount)
	}
	w.Balance += amount
	return nil
}

// Subtract debits the wallet. It fails if the balance is too low.
func (w *Wallet) Subtract(amount uint64) error {
	if w.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", w.Balance, amount)
	}
	w.Balance -= amount
	return nil
}

// Bucket stores wallets by address.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns the bucket used for all wallets.
func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket("cash")}
}

// Get returns the wallet of the address. Unknown addresses have an empty
// wallet.
func (b Bucket) Get(db cooloff.ReadOnlyKVStore, addr cooloff.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}

// Save stores the wallet of the address.
func (b Bucket) Save(db cooloff.KVStore, addr cooloff.Address, w *Wallet) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return b.Put(db, addr, w)
}
