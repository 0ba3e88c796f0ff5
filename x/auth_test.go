package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/cooloff"
	"github.com/iov-one/cooloff/weavetest"
	"github.com/iov-one/cooloff/weavetest/assert"
	"github.com/iov-one/cooloff/x"
)

func TestContextAuth(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	c := weavetest.NewCondition()

	var auth x.ContextAuth
	ctx := context.Background()
	assert.Equal(t, 0, len(auth.GetConditions(ctx)))
	assert.Nil(t, x.MainSigner(ctx, auth))

	ctx = x.WithConditions(ctx, a, b)
	assert.Equal(t, a, x.MainSigner(ctx, auth))
	assert.Equal(t, true, auth.HasAddress(ctx, b.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, c.Address()))
	assert.Equal(t, []cooloff.Address{a.Address(), b.Address()}, x.GetAddresses(ctx, auth))

	ctx = x.WithConditions(ctx, c)
	assert.Equal(t, c, x.MainSigner(ctx, auth))
	assert.Equal(t, false, auth.HasAddress(ctx, a.Address()))
}

func TestChainAuth(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()

	ctx := context.Background()
	auth := x.ChainAuth(&weavetest.Auth{Signer: a}, &weavetest.Auth{Signer: b})

	assert.Equal(t, []cooloff.Condition{a, b}, auth.GetConditions(ctx))
	assert.Equal(t, true, auth.HasAddress(ctx, a.Address()))
	assert.Equal(t, true, auth.HasAddress(ctx, b.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, weavetest.NewCondition().Address()))
}
