// Package store defines the persistence port for practice sessions.
//
// SessionStore is implemented by the in-process cache backend and by the
// postgres backend; the HTTP session layer depends only on this interface.
// The package also carries the database helpers shared by SQL-backed stores.
package store
