/*
Package errors implements coded errors for the cooloff ledger.

Every failure returned by the ledger wraps one of the root errors declared with
Register. A root error carries a numeric code that clients (the CLI, an
indexer) can rely on, while Wrap and Wrapf add human readable context on the
way up the call stack.

Use Is to test an error against a root error kind. It unwraps any number of
Wrap layers.

A stacktrace is attached at the innermost Wrap call. Format an error with %+v
to print it.
*/
package errors
