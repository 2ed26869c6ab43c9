// Package service contains the application use cases. Practice orchestrates
// the memorization flow: it builds a session from the input form, serves
// one practice step at a time, records scored recalls and assembles the
// results table. It depends on domain types and on injected capabilities,
// never on HTTP or a concrete storage.
package service
