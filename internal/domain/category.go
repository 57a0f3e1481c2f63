package domain

// Category represents an expense/income category registered by the user.
type Category struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// PaymentType represents a payment or receipt method (cash, card, ...).
type PaymentType struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}
