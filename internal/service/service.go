package service

import (
	"context"
	"strings"
	"time"

	"meusgastos/internal/domain"
	"meusgastos/internal/repository"

	"github.com/shopspring/decimal"
)

// dateLayout is the only accepted entry date form
const dateLayout = "2006-01-02"

// DefaultEntryLimit caps entry listings when the caller gives no limit
const DefaultEntryLimit = 50

// Ledger provides business logic for categories, payment types, and
// entries on top of a repository.Store.
type Ledger struct {
	store    repository.Store
	eventBus *EventBus
}

// NewLedger creates a new ledger service
func NewLedger(store repository.Store, eventBus *EventBus) *Ledger {
	return &Ledger{
		store:    store,
		eventBus: eventBus,
	}
}

// ListCategories returns all categories ordered by description
func (s *Ledger) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.store.ListCategories(ctx)
}

// CreateCategory trims and validates the description, then inserts
func (s *Ledger) CreateCategory(ctx context.Context, description string) (*domain.Category, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &repository.ValidationError{Field: "description", Reason: "must not be empty"}
	}

	created, err := s.store.CreateCategory(ctx, description)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{Type: EventCategoryCreated, Payload: created})
	return created, nil
}

// DeleteCategory removes a category by id. Deleting an unknown id is a
// no-op; deleting a category still referenced by entries fails with
// KindForeignKey.
func (s *Ledger) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{Type: EventCategoryDeleted, Payload: map[string]int64{"id": id}})
	return nil
}

// ListPaymentTypes returns all payment types ordered by description
func (s *Ledger) ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error) {
	return s.store.ListPaymentTypes(ctx)
}

// CreatePaymentType trims and validates the description, then inserts
func (s *Ledger) CreatePaymentType(ctx context.Context, description string) (*domain.PaymentType, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &repository.ValidationError{Field: "description", Reason: "must not be empty"}
	}

	created, err := s.store.CreatePaymentType(ctx, description)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{Type: EventPaymentTypeCreated, Payload: created})
	return created, nil
}

// DeletePaymentType removes a payment type by id
func (s *Ledger) DeletePaymentType(ctx context.Context, id int64) error {
	if err := s.store.DeletePaymentType(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{Type: EventPaymentTypeDeleted, Payload: map[string]int64{"id": id}})
	return nil
}

// ListEntries returns up to limit entries, most recent first. A
// non-positive limit falls back to DefaultEntryLimit.
func (s *Ledger) ListEntries(ctx context.Context, limit int) ([]domain.EntryView, error) {
	if limit <= 0 {
		limit = DefaultEntryLimit
	}
	return s.store.ListEntries(ctx, limit)
}

// CreateEntry validates the entry and inserts it. Validation
// short-circuits on the first failing field, checked in a fixed order:
// date, amount, category, payment type, direction.
func (s *Ledger) CreateEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	created, err := s.store.CreateEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{Type: EventEntryCreated, Payload: created})
	return created, nil
}

// DeleteEntry removes an entry by id; unknown ids are a no-op
func (s *Ledger) DeleteEntry(ctx context.Context, id int64) error {
	if err := s.store.DeleteEntry(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{Type: EventEntryDeleted, Payload: map[string]int64{"id": id}})
	return nil
}

// Summary returns the per-direction totals for the home screen balance
func (s *Ledger) Summary(ctx context.Context) (*domain.Summary, error) {
	return s.store.Summary(ctx)
}

func validateEntry(entry *domain.Entry) error {
	// time.Parse alone accepts unpadded fields ("2025-1-1"), so the
	// round trip check enforces the strict ISO form.
	parsed, err := time.Parse(dateLayout, entry.Date)
	if err != nil || parsed.Format(dateLayout) != entry.Date {
		return &repository.ValidationError{Field: "date", Reason: "must be a valid YYYY-MM-DD date"}
	}
	if entry.Amount.LessThanOrEqual(decimal.Zero) {
		return &repository.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if entry.CategoryID <= 0 {
		return &repository.ValidationError{Field: "category_id", Reason: "must be provided"}
	}
	if entry.PaymentTypeID <= 0 {
		return &repository.ValidationError{Field: "payment_type_id", Reason: "must be provided"}
	}
	if !entry.Direction.Valid() {
		return &repository.ValidationError{Field: "direction", Reason: `must be "C" or "D"`}
	}
	return nil
}
