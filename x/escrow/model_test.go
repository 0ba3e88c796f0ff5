package escrow

import (
	"bytes"
	"testing"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/weavetest"
	"github.com/iov-one/cooloff/weavetest/assert"
)

func TestEscrowValidate(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	valid := func() *Escrow {
		return &Escrow{
			ID:          escrowID(alice, bob, 5, 100, 1),
			Sender:      alice,
			Recipient:   bob,
			Amount:      5,
			CreatedAt:   100,
			ReleaseTime: 400,
			IsActive:    true,
		}
	}

	cases := map[string]struct {
		mutate  func(*Escrow)
		wantErr *errors.Error
	}{
		"valid active": {
			mutate: func(*Escrow) {},
		},
		"valid released": {
			mutate: func(e *Escrow) {
				e.IsReleased = true
				e.IsActive = false
			},
		},
		"short id": {
			mutate:  func(e *Escrow) { e.ID = e.ID[:8] },
			wantErr: errors.ErrModel,
		},
		"missing sender": {
			mutate:  func(e *Escrow) { e.Sender = nil },
			wantErr: errors.ErrInput,
		},
		"same parties": {
			mutate:  func(e *Escrow) { e.Recipient = alice },
			wantErr: errors.ErrModel,
		},
		"zero amount": {
			mutate:  func(e *Escrow) { e.Amount = 0 },
			wantErr: errors.ErrAmount,
		},
		"release before creation": {
			mutate:  func(e *Escrow) { e.ReleaseTime = 99 },
			wantErr: errors.ErrModel,
		},
		"released and returned": {
			mutate: func(e *Escrow) {
				e.IsReleased = true
				e.IsReturned = true
				e.IsActive = false
			},
			wantErr: errors.ErrModel,
		},
		"inactive without a transition": {
			mutate:  func(e *Escrow) { e.IsActive = false },
			wantErr: errors.ErrModel,
		},
		"active after a transition": {
			mutate:  func(e *Escrow) { e.IsReturned = true },
			wantErr: errors.ErrModel,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := valid()
			tc.mutate(e)
			err := e.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestEscrowID(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	base := escrowID(alice, bob, 5, 100, 1)
	assert.Equal(t, IDLength, len(base))
	assert.Equal(t, base, escrowID(alice, bob, 5, 100, 1))

	variants := [][]byte{
		escrowID(bob, alice, 5, 100, 1),
		escrowID(alice, bob, 6, 100, 1),
		escrowID(alice, bob, 5, 101, 1),
		escrowID(alice, bob, 5, 100, 2),
	}
	for i, v := range variants {
		if bytes.Equal(base, v) {
			t.Fatalf("variant %d collides with the base id", i)
		}
	}
}

func TestEscrowAddress(t *testing.T) {
	id := escrowID(weavetest.NewCondition().Address(), weavetest.NewCondition().Address(), 1, 1, 1)
	esc := Escrow{ID: id}
	assert.Equal(t, cooloff.NewCondition("escrow", "seq", id).Address(), esc.Address())
	assert.Nil(t, esc.Address().Validate())
}
