package repository

import (
	"context"

	"meusgastos/internal/domain"
)

// Store defines all data access operations for the ledger.
type Store interface {
	// Categories
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, description string) (*domain.Category, error)
	// DeleteCategory is idempotent by id; deleting a category still
	// referenced by entries fails with KindForeignKey.
	DeleteCategory(ctx context.Context, id int64) error

	// Payment types
	ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error)
	CreatePaymentType(ctx context.Context, description string) (*domain.PaymentType, error)
	DeletePaymentType(ctx context.Context, id int64) error

	// Entries
	ListEntries(ctx context.Context, limit int) ([]domain.EntryView, error)
	CreateEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error

	// Summary returns the per-direction totals in a single aggregate query
	Summary(ctx context.Context) (*domain.Summary, error)
}
