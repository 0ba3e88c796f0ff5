package weavetest

import (
	"context"

	"github.com/iov-one/cooloff"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. You can use
// either Signer or Signers (or both) attributes to reference conditions.
type Auth struct {
	// Signer represents an authentication of a single signer. It is
	// the main signer when set.
	Signer cooloff.Condition

	// Signers represents an authentication of multiple signers.
	Signers []cooloff.Condition
}

func (a *Auth) GetConditions(context.Context) []cooloff.Condition {
	if a.Signer != nil {
		return append([]cooloff.Condition{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx context.Context, addr cooloff.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
