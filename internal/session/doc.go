// Package session keeps a practice session between HTTP requests.
//
// Two Store implementations are provided. CookieStore puts the whole session
// into a signed JWT cookie, so the server keeps no state. ServerStore keeps
// the session in a store.SessionStore backend (in-process cache or postgres)
// and only puts a random id into the cookie.
package session
