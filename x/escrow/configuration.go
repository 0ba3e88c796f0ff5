package escrow

import (
	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/gconf"
)

const (
	// DefaultWindow is the number of seconds a sender can return an
	// escrow for, when no configuration was stored.
	DefaultWindow int64 = 300

	confPkg = "escrow"
)

// Configuration is the escrow extension configuration, stored by gconf.
type Configuration struct {
	// Window is the number of seconds between the creation of an escrow
	// and its release time.
	Window int64 `json:"window"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate implements gconf.Configuration.
func (c *Configuration) Validate() error {
	if c.Window <= 0 {
		return errors.Wrapf(errors.ErrInput, "window must be positive, got %d", c.Window)
	}
	return nil
}

// LoadConfiguration returns the configuration stored in the database, or
// the default configuration if none was saved.
func LoadConfiguration(db cooloff.ReadOnlyKVStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return Configuration{Window: DefaultWindow}, nil
	default:
		return Configuration{}, err
	}
}

// SaveConfiguration validates and stores the configuration.
func SaveConfiguration(db cooloff.KVStore, conf Configuration) error {
	return gconf.Save(db, confPkg, &conf)
}
