package orm

import (
	"github.com/iov-one/cooloff/errors"
	amino "github.com/tendermint/go-amino"
)

// Model is a persisted entity. Validate is called before every write.
type Model interface {
	Validate() error
}

var cdc = amino.NewCodec()

// Codec returns the amino codec used to serialize all models. Register any
// interface implementation before the first use.
func Codec() *amino.Codec {
	return cdc
}

// Marshal validates and serializes a model.
func Marshal(m Model) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "validation")
	}
	raw, err := cdc.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal deserializes raw data into the given model pointer.
func Unmarshal(raw []byte, dst interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dst, err)
	}
	return nil
}
