package sqlite

import (
	"context"

	"meusgastos/internal/domain"
)

// ListCategories returns every category ordered by description
func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, descricao FROM category ORDER BY descricao`)
	if err != nil {
		return nil, mapError("list categories", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Description); err != nil {
			return nil, mapError("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate categories", err)
	}

	return categories, nil
}

// CreateCategory inserts a category and returns the stored row. The
// description must already be trimmed and non-empty; a duplicate fails
// with KindUnique.
func (r *Repository) CreateCategory(ctx context.Context, description string) (*domain.Category, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO category (descricao) VALUES (?)`, description)
	if err != nil {
		return nil, mapError("create category", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, mapError("create category", err)
	}

	return &domain.Category{ID: id, Description: description}, nil
}

// DeleteCategory removes a category by id. Unknown ids are a no-op; a
// category still referenced by entries fails with KindForeignKey.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM category WHERE id = ?`, id); err != nil {
		return mapError("delete category", err)
	}
	return nil
}
