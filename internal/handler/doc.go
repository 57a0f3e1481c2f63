// Package handler exposes the ledger over HTTP.
//
// Handlers are thin: they decode the request, call the service, and map
// the typed error taxonomy to statuses — validation failures become 400
// with the failing field's message, uniqueness and referential integrity
// conflicts become 409, and everything else is a 500 with the detail
// logged. Middleware (recovery, CORS, request logging) is applied by the
// server through Chain.
package handler
