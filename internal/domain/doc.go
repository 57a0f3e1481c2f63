// Package domain defines the core entities of the meusgastos ledger.
//
// The model is intentionally small: a Category and a PaymentType are
// user-registered lookup rows, and an Entry is a single dated financial
// movement referencing one of each. Amounts are decimal values
// (github.com/shopspring/decimal) so summary arithmetic stays exact.
//
// Validation of user input lives in the service layer; this package only
// carries the types and the Direction enumeration shared by every layer.
package domain
