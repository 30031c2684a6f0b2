package repository

import (
	"context"

	"github.com/plute10/trivia/internal/question"
)

// CategoryRepository implements question.CategoryStore on Postgres. The
// catalog is seeded by migration and has no mutation path here.
type CategoryRepository struct {
	db Querier
}

var _ question.CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(db Querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListAll returns every category in id order. Emptiness policy is the
// service's concern; an empty catalog is returned as an empty slice.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]question.Category, error) {
	const q = `
		SELECT id, type
		FROM categories
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []question.Category{}
	for rows.Next() {
		var c question.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
