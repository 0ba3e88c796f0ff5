/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension owns one configuration entry, stored under "_c:<package>".
The configuration is loaded from the genesis file with InitConfig and read
back with Load. Every write is validated.
*/
package gconf
