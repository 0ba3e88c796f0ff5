/*
Package x contains helpers shared by the extensions living in its
subpackages, most notably the Authenticator used to resolve the caller
identity of an operation.
*/
package x
