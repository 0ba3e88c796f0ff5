package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/app"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/store/iavl"
	"github.com/iov-one/cooloff/x"
	"github.com/iov-one/cooloff/x/cash"
	"github.com/iov-one/cooloff/x/escrow"
	"github.com/tendermint/tendermint/libs/log"
)

// node is the application running on the store of the home directory.
type node struct {
	app    *app.StoreApp
	store  *iavl.CommitStore
	bank   *cash.Controller
	ledger *escrow.Ledger
}

func (c *config) logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(c.logs))
	opt, err := log.AllowLevel(c.logLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt).With("module", "cooloffd"), nil
}

func (c *config) open() (*node, error) {
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(c.home, "data")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create %s: %s", dir, err)
	}
	st, err := iavl.NewCommitStore(dir, "cooloff")
	if err != nil {
		return nil, err
	}
	if err := st.LoadLatestVersion(); err != nil {
		st.Close()
		return nil, err
	}

	bank := cash.NewController()
	ledger := escrow.NewLedger(st, x.ContextAuth{}, bank,
		escrow.WithObserver(escrow.ObserverFunc(func(ev escrow.Event) {
			logger.Debug("event", "seq", ev.Seq, "kind", ev.Kind, "escrow", fmt.Sprintf("%X", ev.EscrowID))
		})))
	router := cooloff.NewRouter()
	escrow.RegisterRoutes(router, ledger)
	gen := cooloff.ChainInitializers(
		cash.Initializer{Minter: bank},
		escrow.Initializer{},
	)

	a, err := app.NewStoreApp(st, router, gen, logger)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &node{
		app:    a,
		store:  st,
		bank:   bank,
		ledger: ledger,
	}, nil
}

func (n *node) close() {
	n.store.Close()
}

// blockInfo describes the moment the command is executed at.
func (c *config) blockInfo(n *node) (cooloff.BlockInfo, error) {
	now := time.Now()
	if c.timeSet {
		now = time.Unix(c.time, 0)
	}
	return n.app.BlockInfo(now, c.height)
}

// SignerCondition returns the condition of the signer with the given name.
func SignerCondition(name string) cooloff.Condition {
	return cooloff.NewCondition("cli", "name", []byte(name))
}

func (c *config) signer() (cooloff.Condition, error) {
	if c.from == "" {
		return nil, errors.Wrapf(errors.ErrInput, "--%s is required", flagFrom)
	}
	return SignerCondition(c.from), nil
}

func (c *config) print(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	_, err = fmt.Fprintln(c.out, string(raw))
	return err
}
