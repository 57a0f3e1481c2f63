// Package service implements the business logic between the HTTP
// handlers and the store.
//
// The Ledger service owns all input validation: it rejects malformed
// input with *repository.ValidationError before any SQL runs, and passes
// storage errors through unchanged so the handler layer can map kinds to
// HTTP statuses. Successful mutations publish change events on the
// EventBus so connected clients can refresh.
package service
