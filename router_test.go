package cooloff_test

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/weavetest/assert"
	cmn "github.com/tendermint/tendermint/libs/common"
)

type pingMsg struct {
	path string
	err  error
}

func (m pingMsg) Path() string    { return m.path }
func (m pingMsg) Validate() error { return m.err }

func TestRouter(t *testing.T) {
	var calls int
	rt := cooloff.NewRouter()
	rt.Handle("test/ping", cooloff.HandlerFunc(func(ctx context.Context, info cooloff.BlockInfo, msg cooloff.Msg) (*cooloff.DeliverResult, error) {
		calls++
		return &cooloff.DeliverResult{
			Data: []byte("pong"),
			Tags: []cmn.KVPair{{Key: []byte("action"), Value: []byte(msg.Path())}},
		}, nil
	}))

	info, err := cooloff.NewBlockInfo(1, time.Unix(1, 0), "test-chain", nil)
	assert.Nil(t, err)
	ctx := context.Background()

	res, err := rt.Deliver(ctx, info, pingMsg{path: "test/ping"})
	assert.Nil(t, err)
	assert.Equal(t, []byte("pong"), res.Data)
	assert.Equal(t, 1, calls)

	_, err = rt.Deliver(ctx, info, pingMsg{path: "test/ping", err: errors.ErrInput.New("bad")})
	assert.IsErr(t, errors.ErrInput, err)
	assert.Equal(t, 1, calls)

	_, err = rt.Deliver(ctx, info, pingMsg{path: "test/pong"})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterRegistration(t *testing.T) {
	h := cooloff.HandlerFunc(func(context.Context, cooloff.BlockInfo, cooloff.Msg) (*cooloff.DeliverResult, error) {
		return nil, nil
	})
	rt := cooloff.NewRouter()
	rt.Handle("a/b", h)

	assert.Panics(t, func() { rt.Handle("a/b", h) })
	assert.Panics(t, func() { rt.Handle("with space", h) })
}

func TestChainInitializers(t *testing.T) {
	var order []string
	record := func(name string, err error) cooloff.Initializer {
		return initFunc(func(cooloff.Options, cooloff.KVStore) error {
			order = append(order, name)
			return err
		})
	}

	gen := cooloff.ChainInitializers(record("a", nil), record("b", errors.ErrHuman), record("c", nil))
	err := gen.FromGenesis(cooloff.Options{}, nil)
	assert.IsErr(t, errors.ErrHuman, err)
	assert.Equal(t, []string{"a", "b"}, order)

	var dst struct{ Name string }
	opts := cooloff.Options{"x": []byte(`{"name": "cool"}`), "bad": []byte(`{`)}
	assert.Nil(t, opts.ReadOptions("x", &dst))
	assert.Equal(t, "cool", dst.Name)
	assert.Nil(t, opts.ReadOptions("missing", &dst))
	assert.IsErr(t, errors.ErrInput, opts.ReadOptions("bad", &dst))
}

type initFunc func(cooloff.Options, cooloff.KVStore) error

func (f initFunc) FromGenesis(opts cooloff.Options, db cooloff.KVStore) error {
	return f(opts, db)
}
