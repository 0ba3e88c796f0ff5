package cooloff

import (
	"testing"
	"time"

	"github.com/iov-one/cooloff/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestNewBlockInfo(t *testing.T) {
	now := time.Unix(1000, 0)

	info, err := NewBlockInfo(7, now, "test-chain", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Height())
	assert.Equal(t, "test-chain", info.ChainID())
	assert.Equal(t, UnixTime(1000), info.UnixTime())
	assert.True(t, info.BlockTime().Equal(now))
	assert.NotNil(t, info.Logger())

	_, err = NewBlockInfo(1, now, "bad chain id!", nil)
	assert.True(t, errors.ErrInput.Is(err))
	_, err = NewBlockInfo(-1, now, "test-chain", nil)
	assert.True(t, errors.ErrInput.Is(err))

	var empty BlockInfo
	assert.NotNil(t, empty.Logger())
}

func TestBlockInfoIsExpired(t *testing.T) {
	info, err := NewBlockInfo(1, time.Unix(300, 0), "test-chain", log.NewNopLogger())
	require.NoError(t, err)

	assert.True(t, info.IsExpired(299))
	assert.True(t, info.IsExpired(300))
	assert.False(t, info.IsExpired(301))
}

func TestBlockInfoWithLogInfo(t *testing.T) {
	info, err := NewBlockInfo(1, time.Unix(0, 0), "test-chain", log.NewNopLogger())
	require.NoError(t, err)
	withLog := info.WithLogInfo("module", "test")
	assert.Equal(t, info.Height(), withLog.Height())
	assert.NotNil(t, withLog.Logger())
}
