package app

import (
	"context"
	"fmt"
	"time"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp contains a data store, the router delivering messages and the
// code initializing the state from a genesis file.
//
// Every successfully delivered message is committed as a new version.
type StoreApp struct {
	logger log.Logger

	store       cooloff.CommitKVStore
	router      cooloff.Handler
	initializer cooloff.Initializer

	// chainID is loaded from db on start and saved once by InitChain.
	chainID string
}

// NewStoreApp loads the application state from the store.
func NewStoreApp(store cooloff.CommitKVStore, router cooloff.Handler, init cooloff.Initializer, logger log.Logger) (*StoreApp, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	return &StoreApp{
		logger:      logger,
		store:       store,
		router:      router,
		initializer: init,
		chainID:     chainID,
	}, nil
}

// ChainID returns the chain id set by the genesis, or an empty string if
// the chain was not initialized yet.
func (s *StoreApp) ChainID() string {
	return s.chainID
}

// Logger returns the application base logger.
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// InitChain stores the chain id and runs the initializers on the genesis
// app state. It can be done only once.
func (s *StoreApp) InitChain(gen Genesis) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain %q", s.chainID)
	}
	cache := s.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := s.initializer.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Write(); err != nil {
		return err
	}
	if _, err := s.Commit(); err != nil {
		return err
	}
	s.chainID = gen.ChainID
	s.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// BlockInfo returns the block info for a new block at the given time. A
// zero height means the next version.
func (s *StoreApp) BlockInfo(now time.Time, height int64) (cooloff.BlockInfo, error) {
	if s.chainID == "" {
		return cooloff.BlockInfo{}, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	if height == 0 {
		height = s.store.LatestVersion().Version + 1
	}
	return cooloff.NewBlockInfo(height, now, s.chainID, s.logger)
}

// Deliver executes the message and commits the result.
func (s *StoreApp) Deliver(ctx context.Context, info cooloff.BlockInfo, msg cooloff.Msg) (*cooloff.DeliverResult, error) {
	res, err := s.router.Deliver(ctx, info, msg)
	if err != nil {
		s.logger.Debug("message rejected", "path", msg.Path(), "err", err)
		return nil, err
	}
	if _, err := s.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// Commit persists all changes as a new version.
func (s *StoreApp) Commit() (cooloff.CommitID, error) {
	id, err := s.store.Commit()
	if err != nil {
		return id, err
	}
	s.logger.Info("committed", "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

// Store returns the underlying store, for queries.
func (s *StoreApp) Store() cooloff.CommitKVStore {
	return s.store
}
