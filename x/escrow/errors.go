package escrow

import "github.com/iov-one/cooloff/errors"

// escrow takes 1010-1020
var (
	// ErrAlreadyFinalized is returned when an escrow was already released
	// or returned.
	ErrAlreadyFinalized = errors.Register(1010, "escrow already finalized")

	// ErrWindowViolation is returned when a release happens before the
	// release time or a return happens at or after it.
	ErrWindowViolation = errors.Register(1011, "outside of the allowed time window")

	// ErrTransferFailure is returned when the funds could not be moved.
	ErrTransferFailure = errors.Register(1012, "transfer failure")

	// ErrReentrancy is returned when a mutating call arrives while another
	// one is in progress.
	ErrReentrancy = errors.Register(1013, "reentrancy rejected")
)
