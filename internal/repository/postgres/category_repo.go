package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ergasia-marketplace/internal/domain"
)

type categoryRepo struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) domain.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) FetchAll(ctx context.Context) ([]domain.JobCategory, error) {
	rows, err := r.db.Query(ctx, `SELECT id::text, name FROM job_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.JobCategory{}
	for rows.Next() {
		var c domain.JobCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FindByName matches case-insensitively.
func (r *categoryRepo) FindByName(ctx context.Context, name string) (*domain.JobCategory, error) {
	var c domain.JobCategory
	err := r.db.QueryRow(ctx, `SELECT id::text, name FROM job_categories WHERE lower(name) = lower($1)`, name).
		Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Create returns domain.ErrConflict when a category with the same name exists.
func (r *categoryRepo) Create(ctx context.Context, c *domain.JobCategory) error {
	_, err := r.db.Exec(ctx, `INSERT INTO job_categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	return translate(err)
}
