package app

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/store/iavl"
	"github.com/iov-one/cooloff/weavetest"
	"github.com/iov-one/cooloff/x"
	"github.com/iov-one/cooloff/x/cash"
	"github.com/iov-one/cooloff/x/escrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func newApp(t *testing.T, st cooloff.CommitKVStore) (*StoreApp, *cash.Controller) {
	t.Helper()
	bank := cash.NewController()
	router := cooloff.NewRouter()
	escrow.RegisterRoutes(router, escrow.NewLedger(st, x.ContextAuth{}, bank))
	gen := cooloff.ChainInitializers(cash.Initializer{Minter: bank}, escrow.Initializer{})
	a, err := NewStoreApp(st, router, gen, log.TestingLogger())
	require.NoError(t, err)
	return a, bank
}

func TestInitChain(t *testing.T) {
	st := iavl.NewMemCommitStore()
	a, bank := newApp(t, st)
	assert.Equal(t, "", a.ChainID())

	_, err := a.BlockInfo(time.Unix(10, 0), 0)
	assert.True(t, errors.ErrState.Is(err))

	sender := weavetest.NewCondition()
	gen := Genesis{
		ChainID: "test-chain",
		AppState: cooloff.Options{
			"cash": []byte(`[{"address": "` + sender.Address().String() + `", "balance": 50}]`),
		},
	}
	require.NoError(t, a.InitChain(gen))
	assert.Equal(t, "test-chain", a.ChainID())
	assert.Equal(t, int64(1), st.LatestVersion().Version)

	balance, err := bank.Balance(st, sender.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(50), balance)

	err = a.InitChain(gen)
	assert.True(t, errors.ErrState.Is(err))

	// A restarted app knows its chain.
	restarted, _ := newApp(t, st)
	assert.Equal(t, "test-chain", restarted.ChainID())
}

func TestInitChainFailureLeavesNoState(t *testing.T) {
	st := iavl.NewMemCommitStore()
	a, _ := newApp(t, st)

	err := a.InitChain(Genesis{ChainID: "no"})
	assert.True(t, errors.ErrInput.Is(err))

	err = a.InitChain(Genesis{
		ChainID:  "test-chain",
		AppState: cooloff.Options{"cash": []byte(`[{"address": "ABCD", "balance": 1}]`)},
	})
	assert.True(t, errors.ErrInput.Is(err))
	assert.Equal(t, "", a.ChainID())
	assert.Equal(t, int64(0), st.LatestVersion().Version)

	raw, err := st.Get(chainIDKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestDeliver(t *testing.T) {
	st := iavl.NewMemCommitStore()
	a, bank := newApp(t, st)
	sender := weavetest.NewCondition()
	recipient := weavetest.NewCondition()
	require.NoError(t, a.InitChain(Genesis{
		ChainID:  "test-chain",
		AppState: cooloff.Options{"cash": []byte(`[{"address": "` + sender.Address().String() + `", "balance": 50}]`)},
	}))

	info, err := a.BlockInfo(time.Unix(100, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Height())
	assert.Equal(t, "test-chain", info.ChainID())

	ctx := x.WithConditions(context.Background(), sender)
	res, err := a.Deliver(ctx, info, &escrow.CreateMsg{Recipient: recipient.Address(), Amount: 20})
	require.NoError(t, err)
	require.Len(t, res.Data, escrow.IDLength)
	assert.Equal(t, int64(2), st.LatestVersion().Version)

	// Rejected messages are not committed.
	_, err = a.Deliver(ctx, info, &escrow.CreateMsg{Recipient: recipient.Address(), Amount: 100})
	assert.True(t, escrow.ErrTransferFailure.Is(err))
	assert.Equal(t, int64(2), st.LatestVersion().Version)

	balance, err := bank.Balance(st, sender.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(30), balance)
}

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "genesis.json")
	require.NoError(t, ioutil.WriteFile(file, []byte(`{
		"chain_id": "cool-chain",
		"app_state": {"conf": {"escrow": {"window": 10}}}
	}`), 0600))

	gen, err := LoadGenesis(file)
	require.NoError(t, err)
	assert.Equal(t, "cool-chain", gen.ChainID)
	assert.Contains(t, gen.AppState, "conf")

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInput.Is(err))

	require.NoError(t, ioutil.WriteFile(file, []byte(`{`), 0600))
	_, err = LoadGenesis(file)
	assert.True(t, errors.ErrInput.Is(err))
}
