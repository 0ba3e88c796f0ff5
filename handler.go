package cooloff

import (
	"context"
	"encoding/json"

	"github.com/iov-one/cooloff/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
)

// Msg is a request for the ledger to change its state.
type Msg interface {
	// Path returns the name of the route the message is delivered to.
	Path() string

	// Validate performs a sanity check of the message content. It must
	// not depend on the state.
	Validate() error
}

// Handler executes a message. The caller identity is resolved from the
// context, the time from the block info.
type Handler interface {
	Deliver(ctx context.Context, info BlockInfo, msg Msg) (*DeliverResult, error)
}

// HandlerFunc allows to use a function as a Handler.
type HandlerFunc func(context.Context, BlockInfo, Msg) (*DeliverResult, error)

// Deliver calls f(ctx, info, msg).
func (f HandlerFunc) Deliver(ctx context.Context, info BlockInfo, msg Msg) (*DeliverResult, error) {
	return f(ctx, info, msg)
}

// DeliverResult captures any non-error output of a successfully delivered
// message.
type DeliverResult struct {
	// Data is a machine readable result, ie. the id of a created
	// entity.
	Data []byte
	// Tags describe what happened, for observers and indexers.
	Tags []cmn.KVPair
}

// Options are the app options. Each extension can look up its key and
// parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the
// json into the given obj. Noop and no error if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize extensions from
// genesis file contents.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...Initializer) Initializer {
	return chainInitializer(inits)
}

type chainInitializer []Initializer

func (c chainInitializer) FromGenesis(opts Options, db KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
