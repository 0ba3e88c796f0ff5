package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/store"
	"github.com/iov-one/cooloff/weavetest/assert"
)

type limits struct {
	Max int64 `json:"max"`
}

func (l *limits) Validate() error {
	if l.Max <= 0 {
		return errors.Wrap(errors.ErrState, "max must be positive")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got limits
	assert.IsErr(t, errors.ErrNotFound, Load(db, "limits", &got))

	assert.IsErr(t, errors.ErrState, Save(db, "limits", &limits{Max: -1}))

	assert.Nil(t, Save(db, "limits", &limits{Max: 42}))
	assert.Nil(t, Load(db, "limits", &got))
	assert.Equal(t, limits{Max: 42}, got)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		Want    limits
	}{
		"valid configuration": {
			Genesis: `{"conf": {"limits": {"max": 7}}}`,
			Want:    limits{Max: 7},
		},
		"missing package": {
			Genesis: `{"conf": {"other": {"max": 7}}}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"limits": {"max": 0}}}`,
			WantErr: errors.ErrState,
		},
		"malformed configuration": {
			Genesis: `{"conf": {"limits": {"max": "many"}}}`,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts cooloff.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "limits", &limits{})
			if tc.WantErr != nil {
				assert.IsErr(t, tc.WantErr, err)
				return
			}
			assert.Nil(t, err)

			var got limits
			assert.Nil(t, Load(db, "limits", &got))
			assert.Equal(t, tc.Want, got)
		})
	}
}
