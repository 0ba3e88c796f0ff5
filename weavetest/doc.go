/*
Package weavetest provides helpers for testing code that uses the ledger:
deterministic identities, mocked authentication and block infos.
*/
package weavetest
