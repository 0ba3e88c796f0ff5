package cash

import (
	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address cooloff.Address `json:"address"`
	Balance uint64          `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct {
	Minter CoinMinter
}

var _ cooloff.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and mint the
// balances.
func (i Initializer) FromGenesis(opts cooloff.Options, db cooloff.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	for n, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
		if err := i.Minter.CoinMint(db, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
	}
	return nil
}
