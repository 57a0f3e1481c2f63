package service

import (
	"context"
	"errors"
	"testing"

	"meusgastos/internal/domain"
	"meusgastos/internal/repository"
	"meusgastos/internal/repository/sqlite"

	"github.com/shopspring/decimal"
)

// newTestLedger builds a ledger over an in-memory store
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return NewLedger(repo, NewEventBus())
}

// seedRefs returns one category id and one payment type id from the seeds
func seedRefs(t *testing.T, s *Ledger) (int64, int64) {
	t.Helper()
	ctx := context.Background()

	categories, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	types, err := s.ListPaymentTypes(ctx)
	if err != nil {
		t.Fatalf("list payment types: %v", err)
	}
	return categories[0].ID, types[0].ID
}

func assertValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var verr *repository.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if verr.Field != field {
		t.Fatalf("expected first failing field %q, got %q", field, verr.Field)
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	s := newTestLedger(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "tabs and newlines", input: "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := s.ListCategories(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}

			_, err = s.CreateCategory(ctx, tt.input)
			assertValidationField(t, err, "description")

			after, err := s.ListCategories(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(after) != len(before) {
				t.Fatalf("rejected create inserted a row: %d -> %d", len(before), len(after))
			}
		})
	}
}

func TestCreateCategoryTrims(t *testing.T) {
	s := newTestLedger(t)
	ctx := context.Background()

	created, err := s.CreateCategory(ctx, "  Lazer  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Description != "Lazer" {
		t.Fatalf("expected trimmed description, got %q", created.Description)
	}

	// Same trimmed description again is a uniqueness violation.
	_, err = s.CreateCategory(ctx, "Lazer ")
	if !repository.IsKind(err, repository.KindUnique) {
		t.Fatalf("expected unique violation, got: %v", err)
	}
}

func TestCreatePaymentTypeValidation(t *testing.T) {
	s := newTestLedger(t)
	ctx := context.Background()

	_, err := s.CreatePaymentType(ctx, " ")
	assertValidationField(t, err, "description")

	created, err := s.CreatePaymentType(ctx, "Boleto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestCreateEntryValidationOrder(t *testing.T) {
	s := newTestLedger(t)
	ctx := context.Background()
	catID, ptID := seedRefs(t, s)

	valid := func() *domain.Entry {
		return &domain.Entry{
			Date:          "2025-01-15",
			Amount:        decimal.RequireFromString("10.00"),
			CategoryID:    catID,
			PaymentTypeID: ptID,
			Direction:     domain.DirectionDebit,
		}
	}

	tests := []struct {
		name      string
		mutate    func(*domain.Entry)
		wantField string
	}{
		{
			name: "date checked first even with everything else broken",
			mutate: func(e *domain.Entry) {
				e.Date = "15/01/2025"
				e.Amount = decimal.Zero
				e.CategoryID = 0
				e.PaymentTypeID = 0
				e.Direction = "X"
			},
			wantField: "date",
		},
		{
			name:      "unpadded date rejected",
			mutate:    func(e *domain.Entry) { e.Date = "2025-1-15" },
			wantField: "date",
		},
		{
			name:      "impossible calendar date rejected",
			mutate:    func(e *domain.Entry) { e.Date = "2025-02-30" },
			wantField: "date",
		},
		{
			name: "amount checked before references",
			mutate: func(e *domain.Entry) {
				e.Amount = decimal.RequireFromString("-5")
				e.CategoryID = 0
			},
			wantField: "amount",
		},
		{
			name:      "zero amount rejected",
			mutate:    func(e *domain.Entry) { e.Amount = decimal.Zero },
			wantField: "amount",
		},
		{
			name: "category checked before payment type",
			mutate: func(e *domain.Entry) {
				e.CategoryID = 0
				e.PaymentTypeID = 0
			},
			wantField: "category_id",
		},
		{
			name:      "payment type checked before direction",
			mutate:    func(e *domain.Entry) { e.PaymentTypeID = 0; e.Direction = "X" },
			wantField: "payment_type_id",
		},
		{
			name:      "direction checked last",
			mutate:    func(e *domain.Entry) { e.Direction = "X" },
			wantField: "direction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)

			_, err := s.CreateEntry(ctx, e)
			assertValidationField(t, err, tt.wantField)
		})
	}

	// The rejected creates above must not have inserted anything.
	entries, err := s.ListEntries(ctx, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries after rejected creates, got %d", len(entries))
	}
}

func TestCreateEntryAndSummary(t *testing.T) {
	s := newTestLedger(t)
	ctx := context.Background()
	catID, ptID := seedRefs(t, s)

	_, err := s.CreateEntry(ctx, &domain.Entry{
		Date:          "2025-01-15",
		Amount:        decimal.RequireFromString("100.00"),
		CategoryID:    catID,
		PaymentTypeID: ptID,
		Direction:     domain.DirectionCredit,
	})
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}

	_, err = s.CreateEntry(ctx, &domain.Entry{
		Date:          "2025-01-16",
		Amount:        decimal.RequireFromString("40.00"),
		CategoryID:    catID,
		PaymentTypeID: ptID,
		Direction:     domain.DirectionDebit,
	})
	if err != nil {
		t.Fatalf("create debit: %v", err)
	}

	summary, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.Credits.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected credits 100.00, got %s", summary.Credits)
	}
	if !summary.Debits.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("expected debits 40.00, got %s", summary.Debits)
	}
}

func TestEventsPublishedOnMutations(t *testing.T) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})

	bus := NewEventBus()
	events := make(chan Event, 16)
	bus.Subscribe(events)

	s := NewLedger(repo, bus)
	ctx := context.Background()

	created, err := s.CreateCategory(ctx, "Lazer")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []EventType{EventCategoryCreated, EventCategoryDeleted}
	for _, wantType := range want {
		select {
		case event := <-events:
			if event.Type != wantType {
				t.Fatalf("expected event %q, got %q", wantType, event.Type)
			}
		default:
			t.Fatalf("expected %q event on the bus", wantType)
		}
	}
}
