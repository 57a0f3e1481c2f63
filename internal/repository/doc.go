// Package repository defines the data access boundary for meusgastos.
//
// The Store interface covers every persistence operation the service layer
// needs: list/create/delete for categories, payment types, and entries,
// plus the per-direction aggregate used by the home screen balance. The
// SQLite implementation lives in the sqlite subpackage.
//
// # Error Taxonomy
//
// Storage failures cross this boundary as *StorageError values carrying a
// Kind. Constraint violations the callers are expected to handle
// (duplicate descriptions, deleting a row that entries still reference)
// get their own kinds; anything else is KindOther with the engine error
// preserved in the chain. Input problems detected before any SQL runs are
// *ValidationError values and never reach the store.
package repository
