package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
)

// Genesis file format.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState cooloff.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

var chainIDKey = []byte("_app:chain_id")

func loadChainID(db cooloff.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "chain id")
	}
	return string(raw), nil
}

func saveChainID(db cooloff.KVStore, chainID string) error {
	if !cooloff.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	return db.Set(chainIDKey, []byte(chainID))
}
