// Package postgres provides the PostgreSQL implementation of
// store.SessionStore, the connection helper used to open the database and
// the embedded goose migrations that create the session table.
package postgres
