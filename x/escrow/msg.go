package escrow

import (
	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/errors"
)

const (
	pathCreate  = "escrow/create"
	pathRelease = "escrow/release"
	pathReturn  = "escrow/return"
)

// CreateMsg deposits Amount from the signer into a new escrow for the
// Recipient.
type CreateMsg struct {
	Recipient cooloff.Address `json:"recipient"`
	Amount    uint64          `json:"amount"`
}

var _ cooloff.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreate
}

// Validate makes sure that this is sensible.
func (m *CreateMsg) Validate() error {
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if m.Recipient.IsZero() {
		return errors.Wrap(errors.ErrInput, "zero recipient")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// ReleaseMsg pays the escrow to its recipient.
type ReleaseMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

var _ cooloff.Msg = (*ReleaseMsg)(nil)

func (ReleaseMsg) Path() string {
	return pathRelease
}

func (m *ReleaseMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

// ReturnMsg pays the escrow back to its sender.
type ReturnMsg struct {
	EscrowID []byte `json:"escrow_id"`
}

var _ cooloff.Msg = (*ReturnMsg)(nil)

func (ReturnMsg) Path() string {
	return pathReturn
}

func (m *ReturnMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

func validateEscrowID(id []byte) error {
	if len(id) != IDLength {
		return errors.Wrapf(errors.ErrInput, "escrow id %X", id)
	}
	return nil
}
