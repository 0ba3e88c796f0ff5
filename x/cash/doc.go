/*
Package cash defines a simple implementation of sending value between
wallets.

There is no logic in the value, except that the balance of any wallet may
not go below zero and may not overflow. Thus, this implementation is
referred to as cash. Simple and safe.

A wallet owner may attach a Receiver to its address. The Receiver is code
controlled by the payee and is invoked whenever the wallet is credited,
within the same store transaction. Returning an error from it rejects the
payment.
*/
package cash
