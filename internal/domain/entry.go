package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Direction classifies an entry as a credit (inflow) or debit (outflow).
// The single-character codes are what the database stores.
type Direction string

const (
	DirectionCredit Direction = "C"
	DirectionDebit  Direction = "D"
)

// ParseDirection validates a direction code
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionCredit, DirectionDebit:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q (want %q or %q)", s, DirectionCredit, DirectionDebit)
}

// Valid reports whether the direction is one of the two known codes
func (d Direction) Valid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// Entry represents a single dated financial movement.
// Date is a calendar date in ISO form (YYYY-MM-DD); the time of day is
// never recorded.
type Entry struct {
	ID            int64           `json:"id"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    int64           `json:"category_id"`
	PaymentTypeID int64           `json:"payment_type_id"`
	Direction     Direction       `json:"direction"`
	Note          string          `json:"note,omitempty"`
}

// EntryView is an Entry joined with its lookup descriptions for display.
type EntryView struct {
	Entry
	Category    string `json:"category"`
	PaymentType string `json:"payment_type"`
}

// Summary holds the aggregate totals per direction. A direction with no
// entries contributes zero, never an absent value.
type Summary struct {
	Credits decimal.Decimal `json:"credits"`
	Debits  decimal.Decimal `json:"debits"`
}

// Balance returns credits minus debits
func (s Summary) Balance() decimal.Decimal {
	return s.Credits.Sub(s.Debits)
}
