package escrow

import (
	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/gconf"
)

// Initializer loads the escrow configuration from the genesis file.
type Initializer struct{}

var _ cooloff.Initializer = Initializer{}

// FromGenesis stores conf.escrow of the genesis file. Without it the
// default configuration is used.
func (Initializer) FromGenesis(opts cooloff.Options, db cooloff.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(db, opts, confPkg, &conf)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
