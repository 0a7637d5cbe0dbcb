package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ergasia-marketplace/internal/domain"
)

type clickRepo struct {
	db *pgxpool.Pool
}

func NewClickRepository(db *pgxpool.Pool) domain.ClickRepository {
	return &clickRepo{db: db}
}

func (r *clickRepo) ListByUser(ctx context.Context, userID string) ([]domain.UserClick, error) {
	query := `SELECT id::text, user_id, job_id::text, counter, created_at, updated_at
              FROM user_clicks WHERE user_id = $1 ORDER BY updated_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.UserClick{}
	for rows.Next() {
		var c domain.UserClick
		if err := rows.Scan(&c.ID, &c.UserID, &c.JobID, &c.Counter, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clickRepo) Increment(ctx context.Context, userID, jobID string) (*domain.UserClick, error) {
	query := `INSERT INTO user_clicks (id, user_id, job_id, counter, created_at, updated_at)
              VALUES ($1, $2, $3, 1, now(), now())
              ON CONFLICT (user_id, job_id)
              DO UPDATE SET counter = user_clicks.counter + 1, updated_at = now()
              RETURNING id::text, user_id, job_id::text, counter, created_at, updated_at`
	var c domain.UserClick
	err := r.db.QueryRow(ctx, query, uuid.NewString(), userID, jobID).
		Scan(&c.ID, &c.UserID, &c.JobID, &c.Counter, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}
