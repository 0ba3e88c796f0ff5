/*
Package app glues a persistent store, the message router and the genesis
initializers into a single application, the way a node runs the ledger.
*/
package app
