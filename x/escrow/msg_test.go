package escrow

import (
	"testing"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/weavetest"
	"github.com/iov-one/cooloff/weavetest/assert"
)

func TestMsgValidate(t *testing.T) {
	id := make([]byte, IDLength)
	id[0] = 1

	cases := map[string]struct {
		msg     cooloff.Msg
		wantErr *errors.Error
	}{
		"valid create": {
			msg: &CreateMsg{Recipient: weavetest.NewCondition().Address(), Amount: 1},
		},
		"create without recipient": {
			msg:     &CreateMsg{Amount: 1},
			wantErr: errors.ErrInput,
		},
		"create to zero address": {
			msg:     &CreateMsg{Recipient: make(cooloff.Address, cooloff.AddressLength), Amount: 1},
			wantErr: errors.ErrInput,
		},
		"create with zero amount": {
			msg:     &CreateMsg{Recipient: weavetest.NewCondition().Address()},
			wantErr: errors.ErrAmount,
		},
		"valid release": {
			msg: &ReleaseMsg{EscrowID: id},
		},
		"release with short id": {
			msg:     &ReleaseMsg{EscrowID: id[:4]},
			wantErr: errors.ErrInput,
		},
		"valid return": {
			msg: &ReturnMsg{EscrowID: id},
		},
		"return without id": {
			msg:     &ReturnMsg{},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}
