package x

import (
	"context"

	"github.com/iov-one/cooloff"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system, rather than
// hard-coding one for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled, you may want
	// GetAddresses helper.
	GetConditions(context.Context) []cooloff.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(context.Context, cooloff.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators.
func (m MultiAuth) GetConditions(ctx context.Context) []cooloff.Condition {
	var res []cooloff.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this.
func (m MultiAuth) HasAddress(ctx context.Context, addr cooloff.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator.
func GetAddresses(ctx context.Context, auth Authenticator) []cooloff.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]cooloff.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx context.Context, auth Authenticator) cooloff.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

type ctxAuthKey int

const conditionsKey ctxAuthKey = 0

// WithConditions returns a context authenticated with the given
// conditions. The host sets it up before calling into the ledger. Any
// conditions set before are replaced.
func WithConditions(ctx context.Context, conds ...cooloff.Condition) context.Context {
	return context.WithValue(ctx, conditionsKey, conds)
}

// ContextAuth is an Authenticator reading the conditions set with
// WithConditions. The host is trusted to authenticate the caller before
// calling the ledger.
type ContextAuth struct{}

var _ Authenticator = ContextAuth{}

// GetConditions returns the conditions stored in the context.
func (ContextAuth) GetConditions(ctx context.Context) []cooloff.Condition {
	conds, _ := ctx.Value(conditionsKey).([]cooloff.Condition)
	return conds
}

// HasAddress returns true if any of the context conditions matches the
// address.
func (a ContextAuth) HasAddress(ctx context.Context, addr cooloff.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
