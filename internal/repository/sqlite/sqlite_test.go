package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"meusgastos/internal/repository"
)

// TestOpenSharesOneHandle races several initializers through Open and
// checks they all end up with the same repository.
func TestOpenSharesOneHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	const n = 4
	var (
		wg    sync.WaitGroup
		repos [n]*Repository
		errs  [n]error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repos[i], errs[i] = Open(path)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		assertNoError(t, errs[i])
		if repos[i] != repos[0] {
			t.Fatalf("caller %d got a different handle", i)
		}
	}
	if repos[0].userVersion(t) != schemaVersion {
		t.Fatalf("shared handle not migrated")
	}
}

// newTestRepo creates an in-memory repository with the schema migrated
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertKind fails the test unless err carries the given storage kind
func assertKind(t *testing.T, err error, kind repository.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if !repository.IsKind(err, kind) {
		t.Fatalf("expected %s error, got: %v", kind, err)
	}
}

func (r *Repository) userVersion(t *testing.T) int {
	t.Helper()
	var v int
	if err := r.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		t.Fatalf("read user_version: %v", err)
	}
	return v
}

func (r *Repository) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// ============================================================================
// Migration Tests
// ============================================================================

func TestMigrateStampsVersion(t *testing.T) {
	repo := newTestRepo(t)
	if got := repo.userVersion(t); got != schemaVersion {
		t.Fatalf("expected user_version %d, got %d", schemaVersion, got)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)

	// Second run must be a no-op: same version, same seed rows.
	assertNoError(t, repo.migrate())

	if got := repo.userVersion(t); got != schemaVersion {
		t.Fatalf("expected user_version %d after re-run, got %d", schemaVersion, got)
	}
	if n := repo.countRows(t, "category"); n != 4 {
		t.Fatalf("expected 4 seed categories after re-run, got %d", n)
	}
	if n := repo.countRows(t, "tipo_pagrec"); n != 4 {
		t.Fatalf("expected 4 seed payment types after re-run, got %d", n)
	}
}

func TestMigrateSeedsDefaults(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	categories, err := repo.ListCategories(ctx)
	assertNoError(t, err)
	wantCategories := []string{"Alimentação", "Salário", "Saúde", "Transporte"}
	if len(categories) != len(wantCategories) {
		t.Fatalf("expected %d categories, got %d", len(wantCategories), len(categories))
	}
	for i, want := range wantCategories {
		if categories[i].Description != want {
			t.Fatalf("category %d: expected %q, got %q", i, want, categories[i].Description)
		}
	}

	types, err := repo.ListPaymentTypes(ctx)
	assertNoError(t, err)
	wantTypes := []string{"Cartão", "Dinheiro", "Pix", "Transferência"}
	if len(types) != len(wantTypes) {
		t.Fatalf("expected %d payment types, got %d", len(wantTypes), len(types))
	}
	for i, want := range wantTypes {
		if types[i].Description != want {
			t.Fatalf("payment type %d: expected %q, got %q", i, want, types[i].Description)
		}
	}
}

// ============================================================================
// Category Tests
// ============================================================================

func TestCreateCategory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateCategory(ctx, "Lazer")
	assertNoError(t, err)
	if created.ID == 0 {
		t.Fatalf("expected assigned id, got 0")
	}
	if created.Description != "Lazer" {
		t.Fatalf("expected description Lazer, got %q", created.Description)
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateCategory(ctx, "Lazer")
	assertNoError(t, err)

	before := repo.countRows(t, "category")
	_, err = repo.CreateCategory(ctx, "Lazer")
	assertKind(t, err, repository.KindUnique)
	if after := repo.countRows(t, "category"); after != before {
		t.Fatalf("failed create changed row count: %d -> %d", before, after)
	}
}

func TestDeleteCategoryIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Unknown id deletes silently.
	assertNoError(t, repo.DeleteCategory(ctx, 9999))

	created, err := repo.CreateCategory(ctx, "Lazer")
	assertNoError(t, err)
	assertNoError(t, repo.DeleteCategory(ctx, created.ID))
	assertNoError(t, repo.DeleteCategory(ctx, created.ID))
}

func TestDeletePaymentTypeDuplicateAndIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreatePaymentType(ctx, "Boleto")
	assertNoError(t, err)

	_, err = repo.CreatePaymentType(ctx, "Boleto")
	assertKind(t, err, repository.KindUnique)

	assertNoError(t, repo.DeletePaymentType(ctx, created.ID))
	assertNoError(t, repo.DeletePaymentType(ctx, created.ID))
}
