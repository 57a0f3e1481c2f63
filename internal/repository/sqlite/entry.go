package sqlite

import (
	"context"
	"database/sql"

	"meusgastos/internal/domain"

	"github.com/shopspring/decimal"
)

// ListEntries returns up to limit entries, most recent first. Ordering is
// by date then id descending so same-day entries keep insertion recency.
// Each row carries the joined category and payment type descriptions for
// display.
func (r *Repository) ListEntries(ctx context.Context, limit int) ([]domain.EntryView, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.data, l.valor, l.categoria_id, l.tipopagrec_id, l.tipo, l.observacao,
		       c.descricao, t.descricao
		FROM lancamento l
		JOIN category    c ON c.id = l.categoria_id
		JOIN tipo_pagrec t ON t.id = l.tipopagrec_id
		ORDER BY date(l.data) DESC, l.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, mapError("list entries", err)
	}
	defer rows.Close()

	var entries []domain.EntryView
	for rows.Next() {
		var (
			v      domain.EntryView
			amount float64
			tipo   string
			note   sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Date, &amount, &v.CategoryID, &v.PaymentTypeID,
			&tipo, &note, &v.Category, &v.PaymentType); err != nil {
			return nil, mapError("scan entry", err)
		}
		v.Amount = decimal.NewFromFloat(amount)
		v.Direction = domain.Direction(tipo)
		v.Note = nullToString(note)
		entries = append(entries, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate entries", err)
	}

	return entries, nil
}

// CreateEntry inserts an entry and returns it with the assigned id. The
// foreign key constraints reject unknown category or payment type ids
// with KindForeignKey.
func (r *Repository) CreateEntry(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO lancamento (data, valor, categoria_id, tipopagrec_id, tipo, observacao)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Date, entry.Amount.InexactFloat64(), entry.CategoryID, entry.PaymentTypeID,
		string(entry.Direction), stringToNull(entry.Note))
	if err != nil {
		return nil, mapError("create entry", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapError("create entry", err)
	}

	created := *entry
	created.ID = id
	return &created, nil
}

// DeleteEntry removes an entry by id; unknown ids are a no-op.
func (r *Repository) DeleteEntry(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lancamento WHERE id = ?`, id); err != nil {
		return mapError("delete entry", err)
	}
	return nil
}

// Summary sums entry amounts per direction in a single aggregate query.
// Directions with no entries stay at zero.
func (r *Repository) Summary(ctx context.Context) (*domain.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tipo, SUM(valor) FROM lancamento GROUP BY tipo`)
	if err != nil {
		return nil, mapError("summary", err)
	}
	defer rows.Close()

	summary := &domain.Summary{Credits: decimal.Zero, Debits: decimal.Zero}
	for rows.Next() {
		var (
			tipo  string
			total float64
		)
		if err := rows.Scan(&tipo, &total); err != nil {
			return nil, mapError("scan summary", err)
		}
		switch domain.Direction(tipo) {
		case domain.DirectionCredit:
			summary.Credits = decimal.NewFromFloat(total)
		case domain.DirectionDebit:
			summary.Debits = decimal.NewFromFloat(total)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate summary", err)
	}

	return summary, nil
}
