package sqlite

import (
	"context"

	"meusgastos/internal/domain"
)

// ListPaymentTypes returns every payment type ordered by description
func (r *Repository) ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, descricao FROM tipo_pagrec ORDER BY descricao`)
	if err != nil {
		return nil, mapError("list payment types", err)
	}
	defer rows.Close()

	var types []domain.PaymentType
	for rows.Next() {
		var pt domain.PaymentType
		if err := rows.Scan(&pt.ID, &pt.Description); err != nil {
			return nil, mapError("scan payment type", err)
		}
		types = append(types, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate payment types", err)
	}

	return types, nil
}

// CreatePaymentType inserts a payment type and returns the stored row.
func (r *Repository) CreatePaymentType(ctx context.Context, description string) (*domain.PaymentType, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO tipo_pagrec (descricao) VALUES (?)`, description)
	if err != nil {
		return nil, mapError("create payment type", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapError("create payment type", err)
	}

	return &domain.PaymentType{ID: id, Description: description}, nil
}

// DeletePaymentType removes a payment type by id. Unknown ids are a
// no-op; a type still referenced by entries fails with KindForeignKey.
func (r *Repository) DeletePaymentType(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tipo_pagrec WHERE id = ?`, id); err != nil {
		return mapError("delete payment type", err)
	}
	return nil
}
