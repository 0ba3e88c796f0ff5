package cash

import (
	"context"
	"testing"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/store"
	"github.com/iov-one/cooloff/weavetest"
	"github.com/iov-one/cooloff/weavetest/assert"
)

func TestMoveCoins(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	cases := map[string]struct {
		src, dest   cooloff.Address
		amount      uint64
		receiver    Receiver
		wantErr     *errors.Error
		wantSrc     uint64
		wantDest    uint64
		wantReceive bool
	}{
		"move part of the balance": {
			src:      alice,
			dest:     bob,
			amount:   30,
			wantSrc:  70,
			wantDest: 30,
		},
		"move everything": {
			src:      alice,
			dest:     bob,
			amount:   100,
			wantSrc:  0,
			wantDest: 100,
		},
		"insufficient funds": {
			src:      alice,
			dest:     bob,
			amount:   101,
			wantErr:  errors.ErrInsufficientAmount,
			wantSrc:  100,
			wantDest: 0,
		},
		"empty source wallet": {
			src:      bob,
			dest:     alice,
			amount:   1,
			wantErr:  errors.ErrInsufficientAmount,
			wantSrc:  0,
			wantDest: 100,
		},
		"zero amount": {
			src:      alice,
			dest:     bob,
			amount:   0,
			wantErr:  errors.ErrAmount,
			wantSrc:  100,
			wantDest: 0,
		},
		"same wallet": {
			src:      alice,
			dest:     alice,
			amount:   1,
			wantErr:  errors.ErrInput,
			wantSrc:  100,
			wantDest: 100,
		},
		"receiver is notified": {
			src:    alice,
			dest:   bob,
			amount: 10,
			receiver: ReceiverFunc(func(ctx context.Context, from cooloff.Address, amount uint64) error {
				if !from.Equals(alice) || amount != 10 {
					return errors.ErrHuman
				}
				return nil
			}),
			wantSrc:     90,
			wantDest:    10,
			wantReceive: true,
		},
		"receiver rejects the payment": {
			src:    alice,
			dest:   bob,
			amount: 10,
			receiver: ReceiverFunc(func(context.Context, cooloff.Address, uint64) error {
				return errors.ErrUnauthorized.New("not accepting")
			}),
			wantErr:  errors.ErrUnauthorized,
			wantSrc:  100,
			wantDest: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.CoinMint(db, alice, 100))

			received := false
			if tc.receiver != nil {
				ctrl.OnReceive(tc.dest, ReceiverFunc(func(ctx context.Context, from cooloff.Address, amount uint64) error {
					received = true
					return tc.receiver.Receive(ctx, from, amount)
				}))
			}

			// Like the ledger does, run in a cache and drop it on failure.
			cache := db.CacheWrap()
			err := ctrl.MoveCoins(context.Background(), cache, tc.src, tc.dest, tc.amount)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				cache.Discard()
			} else {
				assert.Nil(t, err)
				assert.Nil(t, cache.Write())
			}
			assert.Equal(t, tc.wantReceive, received)

			got, err := ctrl.Balance(db, tc.src)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSrc, got)
			got, err = ctrl.Balance(db, tc.dest)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantDest, got)
		})
	}
}

func TestCoinMintOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	addr := weavetest.NewCondition().Address()

	assert.Nil(t, ctrl.CoinMint(db, addr, ^uint64(0)))
	assert.IsErr(t, errors.ErrOverflow, ctrl.CoinMint(db, addr, 1))

	got, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, ^uint64(0), got)
}

func TestOnReceiveDetach(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	assert.Nil(t, ctrl.CoinMint(db, alice, 5))

	ctrl.OnReceive(bob, ReceiverFunc(func(context.Context, cooloff.Address, uint64) error {
		return errors.ErrHuman
	}))
	ctrl.OnReceive(bob, nil)
	assert.Nil(t, ctrl.MoveCoins(context.Background(), db, alice, bob, 5))
}
