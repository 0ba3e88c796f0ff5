/*
Package cooloff defines the interfaces and small building blocks shared by
every extension of the cooling-off escrow ledger: identities (Condition and
Address), storage (KVStore and its cache wrapping variants), time (UnixTime
and BlockInfo) and message routing (Msg, Handler and Router).

The clock and the logger are not global. Every operation receives a
BlockInfo describing the "now" it is executed at, as declared by the host.
The caller identity travels in the context.Context and is resolved by an
x.Authenticator implementation.
*/
package cooloff
