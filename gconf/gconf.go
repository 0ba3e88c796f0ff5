package gconf

import (
	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
	"github.com/iov-one/cooloff/orm"
)

// Configuration is implemented by every extension configuration.
type Configuration interface {
	Validate() error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save will Validate the object, before writing it to a special
// "configuration" singleton for that package name.
func Save(db cooloff.KVStore, pkg string, src Configuration) error {
	raw, err := orm.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "configuration %q", pkg)
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration of the given package into dst. ErrNotFound
// is returned when no configuration was saved.
func Load(db cooloff.ReadOnlyKVStore, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "configuration %q", pkg)
	}
	if err := orm.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "configuration %q", pkg)
	}
	return nil
}

// InitConfig will take opts["conf"][pkg], parse it into the given
// Configuration object, validate it, and store under the proper key in the
// database.
func InitConfig(db cooloff.KVStore, opts cooloff.Options, pkg string, conf Configuration) error {
	var confOptions cooloff.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
