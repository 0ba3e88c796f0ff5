/*
Package orm provides a thin persistence layer on top of a KVStore.

Models are encoded with go-amino. Keys are namespaced with a bucket prefix.
Sequence implements a persisted counter, ListIndex an append-only, ordered
list of references grouped by an owner key.
*/
package orm
