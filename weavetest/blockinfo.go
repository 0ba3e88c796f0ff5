package weavetest

import (
	"testing"

	"github.com/iov-one/cooloff"
	"github.com/tendermint/tendermint/libs/log"
)

// ChainID is used by all block infos built by this package.
const ChainID = "test-chain"

// BlockInfo returns a block info at the given height and unix time, with a
// logger writing to the test output.
func BlockInfo(t testing.TB, height int64, now cooloff.UnixTime) cooloff.BlockInfo {
	t.Helper()
	info, err := cooloff.NewBlockInfo(height, now.Time(), ChainID, log.TestingLogger())
	if err != nil {
		t.Fatalf("cannot create block info: %s", err)
	}
	return info
}

// Clock hands out block infos with a monotonic, manually advanced time.
type Clock struct {
	t      testing.TB
	height int64
	now    cooloff.UnixTime
}

// NewClock returns a clock starting at the given time.
func NewClock(t testing.TB, start cooloff.UnixTime) *Clock {
	return &Clock{t: t, height: 1, now: start}
}

// Info returns the block info for the current moment.
func (c *Clock) Info() cooloff.BlockInfo {
	return BlockInfo(c.t, c.height, c.now)
}

// Advance moves the clock forward by the given number of seconds and
// produces a new block.
func (c *Clock) Advance(seconds int64) cooloff.BlockInfo {
	if seconds < 0 {
		c.t.Fatalf("clock cannot move backwards: %d", seconds)
	}
	c.now = c.now.Add(seconds)
	c.height++
	return c.Info()
}

// Set moves the clock to the given time. Time cannot go backwards.
func (c *Clock) Set(now cooloff.UnixTime) cooloff.BlockInfo {
	return c.Advance(int64(now - c.now))
}

// Now returns the current clock time.
func (c *Clock) Now() cooloff.UnixTime {
	return c.now
}

