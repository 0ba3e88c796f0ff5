package cooloff

import (
	"regexp"
	"time"

	"github.com/iov-one/cooloff/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	// DefaultLogger is used for all block infos that have not set
	// anything themselves.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// BlockInfo describes the moment an operation is executed at, as declared
// by the host. It is the only clock source of the ledger.
type BlockInfo struct {
	height  int64
	time    time.Time
	chainID string
	logger  log.Logger
}

// NewBlockInfo creates a BlockInfo struct with current context of where it
// is being executed.
func NewBlockInfo(height int64, now time.Time, chainID string, logger log.Logger) (BlockInfo, error) {
	if !IsValidChainID(chainID) {
		return BlockInfo{}, errors.Wrap(errors.ErrInput, "chainID invalid")
	}
	if height < 0 {
		return BlockInfo{}, errors.Wrap(errors.ErrInput, "negative height")
	}
	if logger == nil {
		logger = DefaultLogger
	}
	return BlockInfo{
		height:  height,
		time:    now,
		chainID: chainID,
		logger:  logger,
	}, nil
}

func (b BlockInfo) ChainID() string {
	return b.chainID
}

func (b BlockInfo) Height() int64 {
	return b.height
}

func (b BlockInfo) BlockTime() time.Time {
	return b.time
}

func (b BlockInfo) UnixTime() UnixTime {
	return AsUnixTime(b.time)
}

// Logger returns the logger attached to this block. It is never nil.
func (b BlockInfo) Logger() log.Logger {
	if b.logger == nil {
		return DefaultLogger
	}
	return b.logger
}

// WithLogInfo accepts keyvalue pairs, and returns another block info like
// this, after passing all the keyvals to the Logger.
func (b BlockInfo) WithLogInfo(keyvals ...interface{}) BlockInfo {
	b.logger = b.Logger().With(keyvals...)
	return b
}

// IsExpired returns true if given time is in the past as compared to the
// "now" as declared for the block. Expiration is inclusive, meaning that if
// current time is equal to the expiration time than this function returns
// true.
func (b BlockInfo) IsExpired(t UnixTime) bool {
	return t <= b.UnixTime()
}
